package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldListID     = "list_id"
	FieldItemID     = "item_id"
	FieldItemName   = "item_name"
	FieldCategory   = "category"
	FieldQuantity   = "quantity"
	FieldCents      = "amount_cents"
	FieldBudget     = "budget_cents"
	FieldTotal      = "total_cents"
	FieldThreshold  = "threshold"
	FieldSeverity   = "severity"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentList    = "list"
	ComponentStore   = "store"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCompare = "compare"
	ComponentExport  = "export"
	ComponentSheets  = "sheets"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpBudget   = "budget"
	OpFinalize = "finalize"
	OpSave     = "save"
	OpLoad     = "load"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpExport   = "export"
)
