package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/application/analysis"
	appcatalog "github.com/salesdesk/backend/internal/application/catalog"
	apptrade "github.com/salesdesk/backend/internal/application/trade"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// ProductOps is the slice of the product service the dispatcher needs
type ProductOps interface {
	Create(ctx context.Context, req appcatalog.CreateProductRequest) (*appcatalog.ProductWithStockResponse, error)
	CreateBatch(ctx context.Context, reqs []appcatalog.CreateProductRequest) (*appcatalog.BatchCreateResponse, error)
	Update(ctx context.Context, id uuid.UUID, req appcatalog.UpdateProductRequest) (*appcatalog.ProductWithStockResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter appcatalog.ProductListFilter) (*appcatalog.ProductListResponse, error)
}

// OrderOps is the slice of the order service the dispatcher needs
type OrderOps interface {
	CreateOrderWithInventorySync(ctx context.Context, req apptrade.CreateOrderRequest) (*apptrade.CreateOrderResponse, error)
}

// ReportOps is the slice of the report service the dispatcher needs
type ReportOps interface {
	AnalyzeInventory(ctx context.Context) (*analysis.InventoryAnalysisResponse, error)
	AnalyzeSales(ctx context.Context, periodDays int) (*analysis.SalesAnalysisResponse, error)
	BusinessReport(ctx context.Context) (*analysis.BusinessReportResponse, error)
}

// Request is one chat turn from the caller. Workflow, when set, is an
// explicit tag from a UI action and bypasses classification; Context
// carries the structured parameters extracted by the caller.
type Request struct {
	Message  string         `json:"message" binding:"required"`
	Workflow string         `json:"workflow"`
	Context  map[string]any `json:"context"`
}

// Dispatcher routes a chat request to exactly one workflow handler and
// shapes the result into the uniform envelope. Handler failures become
// error envelopes, never raw errors; the chat surface always gets a turn
// it can display.
type Dispatcher struct {
	classifier *Classifier
	products   ProductOps
	orders     OrderOps
	reports    ReportOps
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(classifier *Classifier, products ProductOps, orders OrderOps, reports ReportOps) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		products:   products,
		orders:     orders,
		reports:    reports,
	}
}

// Dispatch resolves the workflow and runs its handler exactly once
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) *Envelope {
	workflow := d.resolveWorkflow(req)

	var (
		env *Envelope
		err error
	)

	switch workflow {
	case WorkflowInventoryAnalysis:
		env, err = d.inventoryAnalysis(ctx)
	case WorkflowSalesAnalysis:
		env, err = d.salesAnalysis(ctx, req)
	case WorkflowBusinessReport:
		env, err = d.businessReport(ctx)
	case WorkflowCreateSale:
		env, err = d.createSale(ctx, req)
	case WorkflowAddProduct:
		env, err = d.addProduct(ctx, req)
	case WorkflowEditProduct:
		env, err = d.editProduct(ctx, req)
	case WorkflowDeleteProduct:
		env, err = d.deleteProduct(ctx, req)
	case WorkflowListInventory:
		env, err = d.listInventory(ctx)
	default:
		env = d.help()
	}

	if err != nil {
		return errorEnvelope(workflow, err)
	}
	env.WorkflowID = string(workflow)
	return env
}

func (d *Dispatcher) resolveWorkflow(req Request) Workflow {
	if req.Workflow != "" {
		workflow, _ := ParseWorkflow(req.Workflow)
		return workflow
	}
	return d.classifier.Classify(req.Message).Workflow
}

func (d *Dispatcher) inventoryAnalysis(ctx context.Context) (*Envelope, error) {
	resp, err := d.reports.AnalyzeInventory(ctx)
	if err != nil {
		return nil, err
	}
	return &Envelope{Response: withAdvisory(resp.Summary, resp.Advisory), Data: resp}, nil
}

func (d *Dispatcher) salesAnalysis(ctx context.Context, req Request) (*Envelope, error) {
	days := 0
	if raw, ok := req.Context["period_days"].(float64); ok {
		days = int(raw)
	}
	resp, err := d.reports.AnalyzeSales(ctx, days)
	if err != nil {
		return nil, err
	}
	return &Envelope{Response: withAdvisory(resp.Summary, resp.Advisory), Data: resp}, nil
}

func (d *Dispatcher) businessReport(ctx context.Context) (*Envelope, error) {
	resp, err := d.reports.BusinessReport(ctx)
	if err != nil {
		return nil, err
	}
	return &Envelope{Response: withAdvisory(resp.Summary, resp.Advisory), Data: resp}, nil
}

func (d *Dispatcher) createSale(ctx context.Context, req Request) (*Envelope, error) {
	params, err := decodeParams[apptrade.CreateOrderRequest](req.Context)
	if err != nil {
		return nil, err
	}
	if len(params.Items) == 0 {
		return &Envelope{
			Response: "To record a sale I need the customer name and at least one item (product and quantity).",
		}, nil
	}
	if params.CustomerName == "" {
		params.CustomerName = "Walk-in customer"
	}

	resp, err := d.orders.CreateOrderWithInventorySync(ctx, *params)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Response: fmt.Sprintf("Order %s recorded for %s: %d item(s), total %s.",
			resp.Order.OrderNumber, resp.Order.CustomerName, len(resp.Order.Items), resp.Order.TotalAmount.StringFixed(2)),
		Data: resp,
	}, nil
}

func (d *Dispatcher) addProduct(ctx context.Context, req Request) (*Envelope, error) {
	if _, ok := req.Context["products"]; ok {
		params, err := decodeParams[batchAddParams](req.Context)
		if err != nil {
			return nil, err
		}
		resp, err := d.products.CreateBatch(ctx, params.Products)
		if err != nil {
			return nil, err
		}
		return &Envelope{
			Response: fmt.Sprintf("Registered %d product(s), %d failed.", len(resp.Created), len(resp.Failed)),
			Data:     resp,
		}, nil
	}

	params, err := decodeParams[appcatalog.CreateProductRequest](req.Context)
	if err != nil {
		return nil, err
	}
	if params.Name == "" {
		return &Envelope{
			Response: "To register a product I need at least a name and a price.",
		}, nil
	}

	resp, err := d.products.Create(ctx, *params)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Response: fmt.Sprintf("Product %q registered with SKU %s, %d unit(s) in stock.", resp.Name, resp.SKU, resp.Quantity),
		Data:     resp,
	}, nil
}

func (d *Dispatcher) editProduct(ctx context.Context, req Request) (*Envelope, error) {
	params, err := decodeParams[editProductParams](req.Context)
	if err != nil {
		return nil, err
	}
	if params.ProductID == "" {
		return &Envelope{
			Response: "To edit a product I need its id and the fields to change.",
		}, nil
	}
	id, err := uuid.Parse(params.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product id: "+params.ProductID)
	}

	resp, err := d.products.Update(ctx, id, params.UpdateProductRequest)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Response: fmt.Sprintf("Product %q updated.", resp.Name),
		Data:     resp,
	}, nil
}

func (d *Dispatcher) deleteProduct(ctx context.Context, req Request) (*Envelope, error) {
	params, err := decodeParams[deleteProductParams](req.Context)
	if err != nil {
		return nil, err
	}
	if params.ProductID == "" {
		return &Envelope{
			Response: "To delete a product I need its id.",
		}, nil
	}
	id, err := uuid.Parse(params.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product id: "+params.ProductID)
	}

	if err := d.products.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &Envelope{Response: "Product deleted."}, nil
}

func (d *Dispatcher) listInventory(ctx context.Context) (*Envelope, error) {
	resp, err := d.products.List(ctx, appcatalog.ProductListFilter{})
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Response: fmt.Sprintf("%d product(s), %d unit(s) on hand, inventory value %s.",
			resp.Summary.TotalProducts, resp.Summary.TotalUnits, resp.Summary.TotalValue.StringFixed(2)),
		Data: resp,
	}, nil
}

func (d *Dispatcher) help() *Envelope {
	return &Envelope{
		Response: strings.Join([]string{
			"I can help you with:",
			"- inventory analysis (\"analiza el inventario\")",
			"- sales analysis (\"análisis de ventas\")",
			"- business report (\"reporte del negocio\")",
			"- recording a sale (\"vende 2 laptops a Maria\")",
			"- adding, editing or deleting products",
			"- listing the inventory (\"muestra el inventario\")",
		}, "\n"),
		WorkflowID: string(WorkflowHelp),
	}
}

type batchAddParams struct {
	Products []appcatalog.CreateProductRequest `json:"products"`
}

type editProductParams struct {
	ProductID string `json:"product_id"`
	appcatalog.UpdateProductRequest
}

type deleteProductParams struct {
	ProductID string `json:"product_id"`
}

// decodeParams converts the loosely typed request context into a typed
// parameter struct via a JSON round trip.
func decodeParams[T any](contextData map[string]any) (*T, error) {
	out := new(T)
	if len(contextData) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(contextData)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Malformed request context")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Malformed request context: "+err.Error())
	}
	return out, nil
}

func withAdvisory(summary, advisory string) string {
	if advisory == "" {
		return summary
	}
	return summary + "\n\n" + advisory
}

// errorEnvelope turns a handler failure into a displayable assistant turn
func errorEnvelope(workflow Workflow, err error) *Envelope {
	var domainErr *shared.DomainError
	message := "Something went wrong handling the request."
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	} else if errors.Is(err, shared.ErrNotFound) {
		message = "The requested resource was not found."
	}
	return &Envelope{
		Response:   message,
		WorkflowID: string(workflow),
	}
}
