package kafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/shopsmart/substitution/pkg/schema"
)

// A RecallGateProcessor processes products from the raw input stream,
//
// dropping recalled ones by joining the recall group table and emitting the
// rest to the sellable products topic.
type RecallGateProcessor struct {
	opPrefix     string
	proc         processor
	joinedTable  goka.Table
	outputStream goka.Stream
}

func NewRecallGateProc(
	seedBrokers []string,
	inputStream string,
	recallGroupTable string,
	outputTopic string,
	productSerde Serde,
) (*RecallGateProcessor, error) {
	const op = "NewRecallGateProc"

	var p RecallGateProcessor

	productEventCodec := newProductEventCodec(productSerde)
	joinedTable := goka.GroupTable(goka.Group(recallGroupTable))
	outputStream := goka.Stream(outputTopic)

	gg := goka.DefineGroup(goka.Group("recall-gate-group"),
		goka.Input(goka.Stream(inputStream), productEventCodec, p.processFn),
		goka.Join(joinedTable, recallValueCodec{}),
		goka.Output(outputStream, productEventCodec),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.opPrefix = "RecallGateProcessor"
	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	p.joinedTable = joinedTable
	p.outputStream = outputStream
	return &p, nil
}

func (p *RecallGateProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *RecallGateProcessor) Close() {
	p.proc.close()
}

func (p *RecallGateProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	productV, _ := msg.(schema.ProductV1)
	log := slog.With(
		"op", makeOp(p.opPrefix, op), "productID", productV.ID,
	)

	v, ok := ctx.Join(p.joinedTable).(recallValue)
	if ok && bool(v) {
		log.Warn("product is recalled")
		return
	}
	ctx.Emit(p.outputStream, productV.ID, productV)
	log.Info("product is sellable")
}
