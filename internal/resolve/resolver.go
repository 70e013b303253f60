package resolve

import "log/slog"

// Resolve runs one pass of tower resolution: the empty level first, then every ambient
// scope in the given order (innermost first). A level answering Stop ends the walk.
// The returned collector holds the result.
func Resolve(consumer Consumer, scopes []Scope) *Collector {
	if consumer == nil || consumer.Call() == nil {
		panic("resolve: Resolve called without a consumer or call")
	}
	call := consumer.Call()
	collector := NewCollector(call, consumer.Checks(), consumer.Logger())

	if consumer.Consume(EmptyLevel{}, collector) != Stop {
		for _, scope := range scopes {
			if consumer.Consume(ScopeLevel{Scope: scope}, collector) == Stop {
				break
			}
		}
	}

	outcome := Classify(collector)
	recordResolution(call.Kind, outcome)
	consumer.Logger().Debug("call resolved",
		slog.String("call", call.String()),
		slog.Int("levels", consumer.Group()),
		slog.Int("retained", collector.Len()),
		slog.String("applicability", collector.Applicability().String()),
		slog.String("outcome", outcome.String()))
	return collector
}

// ResolveCall builds the consumer for call and resolves it.
func ResolveCall(call *Call, scopes []Scope, comps *Components) *Collector {
	return Resolve(NewConsumer(call, TokenFor(call.Kind), comps), scopes)
}
