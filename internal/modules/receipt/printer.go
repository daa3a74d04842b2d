package receipt

import "go.uber.org/zap"

// LogPrinter writes receipts to the application log. Stands in for a real
// printer spooler in environments without one.
type LogPrinter struct{ log *zap.Logger }

func NewLogPrinter(log *zap.Logger) *LogPrinter { return &LogPrinter{log: log} }

func (p *LogPrinter) Print(text string) {
	p.log.Info("receipt printed", zap.String("receipt", text))
}
