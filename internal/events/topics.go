package events

// Topic constants for domain events emitted by the storefront.
const (
	TopicOrderCreated    = "order.created"
	TopicOrderInvoiced   = "order.invoiced"
	TopicCatalogImported = "catalog.imported"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicOrderInvoiced,
		TopicCatalogImported,
	}
}
