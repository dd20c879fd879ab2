package tui

import (
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/models"
)

type signedInMsg struct {
	identity  models.Identity
	federated bool
	err       error
}

type signedOutMsg struct {
	err error
}

type resetSentMsg struct {
	err error
}

type residentSavedMsg struct {
	err error
}

type subscribedMsg struct {
	feed        *itemFeed
	unsubscribe gateway.Unsubscribe
	err         error
}

type itemsMsg struct {
	feed  *itemFeed
	items []models.Item
}

type reportsLoadedMsg struct {
	reports []models.Report
}

type exportDoneMsg struct {
	result models.ExportResult
	err    error
}
