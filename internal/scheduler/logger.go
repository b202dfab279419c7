package scheduler

import "go.uber.org/zap"

// cronLogger adapta o zap para cron.Logger
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func newCronLogger(l *zap.Logger) cronLogger {
	return cronLogger{sugar: l.Named("cron").Sugar()}
}

// Info é chamado a cada despertar, por isso fica em nível debug
func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.sugar.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
