package kafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/shopsmart/substitution/pkg/schema"
)

// A RecallRuleProcessor processes recall events
// from the recall stream into a group table keyed by product id.
type RecallRuleProcessor struct {
	opPrefix string
	proc     processor
}

func NewRecallRuleProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	recallSerde Serde,
) (*RecallRuleProcessor, error) {
	const op = "NewRecallRuleProc"

	var p RecallRuleProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newRecallEventCodec(recallSerde),
			p.processFn,
		),
		goka.Persist(recallValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.opPrefix = "RecallRuleProcessor"
	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *RecallRuleProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *RecallRuleProcessor) Close() {
	p.proc.close()
}

func (p *RecallRuleProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.ProductRecallV1)
	v := recallValue(event.Recalled)
	ctx.SetValue(v)
	log.Info(
		"set recall value",
		"productID", event.ProductID,
		"isRecalled", v,
	)
}
