package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ ConnectionStore    = (*MemoryConnectionStore)(nil)
	_ AppCredentialStore = (*MemoryAppCredentialStore)(nil)
	_ MappingStore       = (*MemoryMappingStore)(nil)
	_ ConnectionLocker   = (*MemoryConnectionLocker)(nil)

	_ RefreshBackoffScheduler = ExponentialBackoffScheduler{}
	_ ConfigProvider          = (*CfgxConfigProvider)(nil)
	_ OptionsResolver         = GoOptionsResolver{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
