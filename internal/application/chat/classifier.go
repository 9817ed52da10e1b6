package chat

import "strings"

// Intent is the classifier's verdict for a message
type Intent struct {
	Workflow   Workflow `json:"workflow"`
	Confidence float64  `json:"confidence"`
}

// classifierRule binds a workflow to the phrases that suggest it. Keywords
// are lowercase; multi-word phrases score higher than single words.
type classifierRule struct {
	workflow Workflow
	keywords []string
}

// Classifier maps free text to a workflow tag by keyword matching. The
// operator base works in Spanish and English, so both vocabularies are
// listed, with unaccented spellings alongside the accented ones.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier creates the default keyword classifier
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []classifierRule{
			{
				workflow: WorkflowInventoryAnalysis,
				keywords: []string{
					"analisis de inventario", "análisis de inventario", "analiza el inventario",
					"inventory analysis", "analyze inventory", "analyze stock", "stock analysis",
					"estado del inventario", "analizar inventario",
				},
			},
			{
				workflow: WorkflowSalesAnalysis,
				keywords: []string{
					"analisis de ventas", "análisis de ventas", "analiza las ventas",
					"sales analysis", "analyze sales", "reporte de ventas",
					"ingresos", "revenue", "como van las ventas", "cómo van las ventas",
				},
			},
			{
				workflow: WorkflowBusinessReport,
				keywords: []string{
					"reporte del negocio", "reporte general", "informe", "business report",
					"resumen del negocio", "reporte completo", "full report",
				},
			},
			{
				workflow: WorkflowCreateSale,
				keywords: []string{
					"venta", "vende", "vender", "registrar venta", "nueva venta",
					"sale", "sell", "pedido", "create order", "nueva orden",
				},
			},
			{
				workflow: WorkflowAddProduct,
				keywords: []string{
					"agregar producto", "agrega un producto", "nuevo producto", "crear producto",
					"registrar producto", "add product", "new product", "create product", "añadir producto",
				},
			},
			{
				workflow: WorkflowEditProduct,
				keywords: []string{
					"editar producto", "edita", "modificar producto", "actualizar producto",
					"cambiar precio", "edit product", "update product", "change price",
				},
			},
			{
				workflow: WorkflowDeleteProduct,
				keywords: []string{
					"eliminar producto", "elimina", "borrar producto", "borra",
					"delete product", "remove product", "quitar producto",
				},
			},
			{
				workflow: WorkflowListInventory,
				keywords: []string{
					"lista el inventario", "listar productos", "muestra el inventario",
					"muestrame los productos", "muéstrame los productos", "inventario",
					"list inventory", "show inventory", "list products", "show products",
					"que productos hay", "qué productos hay",
				},
			},
			{
				workflow: WorkflowHelp,
				keywords: []string{
					"ayuda", "help", "que puedes hacer", "qué puedes hacer", "what can you do",
					"como funciona", "cómo funciona",
				},
			},
		},
	}
}

// Classify scores every rule against the message and returns the best
// workflow. A message with no keyword hits falls back to help with zero
// confidence.
func (c *Classifier) Classify(message string) Intent {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return Intent{Workflow: WorkflowHelp, Confidence: 0}
	}

	best := Intent{Workflow: WorkflowHelp, Confidence: 0}
	bestScore := 0

	for _, rule := range c.rules {
		score := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				score += len(strings.Fields(keyword))
			}
		}
		if score > bestScore {
			bestScore = score
			best = Intent{Workflow: rule.workflow, Confidence: confidenceFor(score)}
		}
	}

	return best
}

func confidenceFor(score int) float64 {
	confidence := 0.35 + 0.2*float64(score)
	if confidence > 0.95 {
		return 0.95
	}
	return confidence
}
