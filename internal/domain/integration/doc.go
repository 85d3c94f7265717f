// Package integration holds the failure kinds of the remote storefront API.
//
// The API is the system of record for products, orders and reports. Ports for
// each of those live with their own domain packages (catalog.ProductGateway,
// trade.OrderGateway, report.ReportGateway); the adapter that implements them
// is in the infrastructure layer.
package integration
