package browser

// Log message constants
const (
	LogMsgBrowserStarting    = "starting browser process"
	LogMsgBrowserStarted     = "browser process started"
	LogMsgBrowserStale       = "browser connection stale, relaunching"
	LogMsgBrowserShutdown    = "browser process shut down"
	LogMsgExecutableResolved = "browser executable resolved"
	LogMsgExecutableMissing  = "no browser executable found, attempting install"
	LogMsgInstallFinished    = "browser install finished"
	LogMsgSignalReceived     = "interrupt received, closing browser"
)

// Error message constants
const (
	ErrMsgLaunchDiagnostic = "browser could not be launched; likely causes: no usable executable, " +
		"insufficient disk space for an on-demand install, or network failure downloading the browser"
)
