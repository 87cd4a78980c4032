package auth

import (
	"testing"

	"github.com/goliatone/go-unified/core"
)

func TestDefaultProfiles(t *testing.T) {
	resolver := DefaultProfiles()

	hubspot, ok := resolver.Profile(core.ProviderHubspot)
	if !ok {
		t.Fatal("expected a hubspot profile")
	}
	if !hubspot.RotatesRefreshToken {
		t.Fatal("hubspot rotates refresh tokens on every exchange")
	}
	if hubspot.AuthStyle != core.AuthStyleBody {
		t.Fatalf("unexpected hubspot auth style: %v", hubspot.AuthStyle)
	}

	zoho, ok := resolver.Profile(core.ProviderZohoCRM)
	if !ok {
		t.Fatal("expected a zoho profile")
	}
	if zoho.TokenURL != "{account_url}/oauth/v2/token" {
		t.Fatalf("zoho token endpoints are account-relative, got %q", zoho.TokenURL)
	}

	pipedrive, ok := resolver.Profile(core.ProviderPipedrive)
	if !ok {
		t.Fatal("expected a pipedrive profile")
	}
	if pipedrive.AuthStyle != core.AuthStyleBasic {
		t.Fatalf("pipedrive authenticates with a Basic header, got %v", pipedrive.AuthStyle)
	}

	xero, ok := resolver.Profile(core.ProviderXero)
	if !ok {
		t.Fatal("expected a xero profile")
	}
	if xero.TokenURL != "https://identity.xero.com/connect/token" {
		t.Fatalf("unexpected xero endpoint: %q", xero.TokenURL)
	}
	if xero.AuthStyle != core.AuthStyleBasic {
		t.Fatalf("xero authenticates with a Basic header, got %v", xero.AuthStyle)
	}
	if !xero.RotatesRefreshToken {
		t.Fatal("xero rotates refresh tokens on every exchange")
	}

	if _, ok := resolver.Profile(core.ProviderTrello); ok {
		t.Fatal("providers without refreshable tokens must not resolve")
	}
}

func TestStaticProfileResolver(t *testing.T) {
	resolver := NewStaticProfileResolver(
		core.OAuthProfile{ProviderID: "  jira  ", TokenURL: "https://auth.atlassian.com/oauth/token"},
		core.OAuthProfile{ProviderID: "", TokenURL: "https://ignored.example.com"},
	)

	profile, ok := resolver.Profile(core.ProviderJira)
	if !ok {
		t.Fatal("expected provider ids to be trimmed on registration")
	}
	if profile.ProviderID != core.ProviderJira {
		t.Fatalf("unexpected provider id: %q", profile.ProviderID)
	}

	if _, ok := resolver.Profile(" jira "); !ok {
		t.Fatal("expected lookup ids to be trimmed")
	}
	if _, ok := resolver.Profile(core.ProviderLinear); ok {
		t.Fatal("unregistered providers must not resolve")
	}

	var nilResolver *StaticProfileResolver
	if _, ok := nilResolver.Profile(core.ProviderJira); ok {
		t.Fatal("nil resolver must resolve nothing")
	}
}
