package unified

import (
	"github.com/goliatone/go-unified/core"
	"github.com/goliatone/go-unified/providers/bitbucket"
	"github.com/goliatone/go-unified/providers/clickup"
	"github.com/goliatone/go-unified/providers/discord"
	"github.com/goliatone/go-unified/providers/hubspot"
	"github.com/goliatone/go-unified/providers/jira"
	"github.com/goliatone/go-unified/providers/linear"
	"github.com/goliatone/go-unified/providers/pipedrive"
	"github.com/goliatone/go-unified/providers/quickbooks"
	"github.com/goliatone/go-unified/providers/sfdc"
	"github.com/goliatone/go-unified/providers/slack"
	"github.com/goliatone/go-unified/providers/trello"
	"github.com/goliatone/go-unified/providers/xero"
	"github.com/goliatone/go-unified/providers/zohocrm"
)

func HubspotAdapter() (core.Adapter, error) {
	return hubspot.New()
}

func ZohoCRMAdapter() (core.Adapter, error) {
	return zohocrm.New()
}

func SFDCAdapter() (core.Adapter, error) {
	return sfdc.New()
}

func PipedriveAdapter() (core.Adapter, error) {
	return pipedrive.New()
}

func JiraAdapter() (core.Adapter, error) {
	return jira.New()
}

func LinearAdapter() (core.Adapter, error) {
	return linear.New()
}

func ClickupAdapter() (core.Adapter, error) {
	return clickup.New()
}

func TrelloAdapter() (core.Adapter, error) {
	return trello.New()
}

func BitbucketAdapter() (core.Adapter, error) {
	return bitbucket.New()
}

func SlackAdapter() (core.Adapter, error) {
	return slack.New()
}

func DiscordAdapter() (core.Adapter, error) {
	return discord.New()
}

func QuickbooksAdapter() (core.Adapter, error) {
	return quickbooks.New()
}

func XeroAdapter() (core.Adapter, error) {
	return xero.New()
}

// BuiltinAdapters constructs every adapter shipped with the module.
func BuiltinAdapters() ([]core.Adapter, error) {
	factories := []func() (core.Adapter, error){
		HubspotAdapter,
		ZohoCRMAdapter,
		SFDCAdapter,
		PipedriveAdapter,
		JiraAdapter,
		LinearAdapter,
		ClickupAdapter,
		TrelloAdapter,
		BitbucketAdapter,
		SlackAdapter,
		DiscordAdapter,
		QuickbooksAdapter,
		XeroAdapter,
	}
	adapters := make([]core.Adapter, 0, len(factories))
	for _, factory := range factories {
		adapter, err := factory()
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

// RegisterBuiltinAdapters registers every shipped adapter on the service.
func RegisterBuiltinAdapters(service *Service) error {
	adapters, err := BuiltinAdapters()
	if err != nil {
		return err
	}
	for _, adapter := range adapters {
		if err := service.RegisterAdapter(adapter); err != nil {
			return err
		}
	}
	return nil
}
