package sqlstore

import "github.com/goliatone/go-unified/core"

var (
	_ core.ConnectionStore        = (*ConnectionStore)(nil)
	_ core.AppCredentialStore     = (*AppCredentialStore)(nil)
	_ core.MappingStore           = (*MappingStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
