package auth

import (
	"strings"

	"github.com/goliatone/go-unified/core"
)

// StaticProfileResolver maps provider ids to their token endpoint
// behavior. Providers absent from the table do not support refresh and are
// skipped by the lifecycle sweep.
type StaticProfileResolver struct {
	profiles map[core.ProviderID]core.OAuthProfile
}

func NewStaticProfileResolver(profiles ...core.OAuthProfile) *StaticProfileResolver {
	resolver := &StaticProfileResolver{profiles: make(map[core.ProviderID]core.OAuthProfile, len(profiles))}
	for _, profile := range profiles {
		id := core.ProviderID(strings.TrimSpace(string(profile.ProviderID)))
		if id == "" {
			continue
		}
		profile.ProviderID = id
		resolver.profiles[id] = profile
	}
	return resolver
}

func (r *StaticProfileResolver) Profile(providerID core.ProviderID) (core.OAuthProfile, bool) {
	if r == nil {
		return core.OAuthProfile{}, false
	}
	profile, ok := r.profiles[core.ProviderID(strings.TrimSpace(string(providerID)))]
	return profile, ok
}

// DefaultProfiles returns the token endpoint table for the providers with
// refreshable OAuth tokens. Zoho token URLs are account-relative because
// each Zoho org lives on a regional domain.
func DefaultProfiles() *StaticProfileResolver {
	return NewStaticProfileResolver(
		core.OAuthProfile{
			ProviderID:          core.ProviderHubspot,
			TokenURL:            "https://api.hubapi.com/oauth/v1/token",
			AuthStyle:           core.AuthStyleBody,
			RotatesRefreshToken: true,
		},
		core.OAuthProfile{
			ProviderID: core.ProviderZohoCRM,
			TokenURL:   "{account_url}/oauth/v2/token",
			AuthStyle:  core.AuthStyleBody,
		},
		core.OAuthProfile{
			ProviderID: core.ProviderSFDC,
			TokenURL:   "https://login.salesforce.com/services/oauth2/token",
			AuthStyle:  core.AuthStyleBody,
		},
		core.OAuthProfile{
			ProviderID:          core.ProviderPipedrive,
			TokenURL:            "https://oauth.pipedrive.com/oauth/token",
			AuthStyle:           core.AuthStyleBasic,
			RotatesRefreshToken: true,
		},
		core.OAuthProfile{
			ProviderID:          core.ProviderXero,
			TokenURL:            "https://identity.xero.com/connect/token",
			AuthStyle:           core.AuthStyleBasic,
			RotatesRefreshToken: true,
		},
	)
}
