package core

// Logger is any service that can log & report messages.
// expected args: error, map[string]interface{}, account.Profile
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
