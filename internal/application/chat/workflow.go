package chat

import (
	"github.com/salesdesk/backend/internal/application/analysis"
)

// Workflow is the closed set of operations the dispatcher can run. Intent
// classification output is coerced into one of these tags before anything
// executes; an unrecognized tag degrades to WorkflowHelp.
type Workflow string

const (
	WorkflowInventoryAnalysis Workflow = "inventory-analysis"
	WorkflowSalesAnalysis     Workflow = "sales-analysis"
	WorkflowBusinessReport    Workflow = "business-report"
	WorkflowCreateSale        Workflow = "create-sale"
	WorkflowAddProduct        Workflow = "add-product"
	WorkflowEditProduct       Workflow = "edit-product"
	WorkflowDeleteProduct     Workflow = "delete-product"
	WorkflowListInventory     Workflow = "list-inventory"
	WorkflowHelp              Workflow = "help"
)

// AllWorkflows lists every dispatchable workflow
var AllWorkflows = []Workflow{
	WorkflowInventoryAnalysis,
	WorkflowSalesAnalysis,
	WorkflowBusinessReport,
	WorkflowCreateSale,
	WorkflowAddProduct,
	WorkflowEditProduct,
	WorkflowDeleteProduct,
	WorkflowListInventory,
	WorkflowHelp,
}

// ParseWorkflow coerces a string into a known workflow tag
func ParseWorkflow(s string) (Workflow, bool) {
	for _, w := range AllWorkflows {
		if string(w) == s {
			return w, true
		}
	}
	return WorkflowHelp, false
}

// Envelope is the uniform chat response shape. Data carries the workflow's
// structured payload; Charts is the legacy chart list, only populated when
// Data does not already embed visualizations.
type Envelope struct {
	Response   string                   `json:"response"`
	Data       any                      `json:"data,omitempty"`
	Charts     []analysis.Visualization `json:"charts,omitempty"`
	WorkflowID string                   `json:"workflow_id,omitempty"`
}
