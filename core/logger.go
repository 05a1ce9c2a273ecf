package core

type (
	// Subject identifies the authenticated caller in log reports.
	Subject struct {
		ID    string
		Email string
	}

	// Logger is any service that can log messages with additional context
	// arguments. Implementations may inspect args for known types (eg. a
	// Subject) to enrich the report.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}
)
