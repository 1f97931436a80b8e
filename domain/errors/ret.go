package errors

// The Application return code errors
const (
	RetLayerFilesystemError = 9
	RetLoadConfigError      = 10
	RetCreateDatabaseError  = 11
	RetMigrateDatabaseError = 12
	RetCreateStoreError     = 13
	RetCreateWatcherError   = 17
	RetActivatePanelError   = 20
	RetCreateWebServerError = 40
)
