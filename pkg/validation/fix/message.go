package fixgateway

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joripage/ordervalidation-dev/pkg/validation"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

// MessagePool recycles quickfix messages between reports.
type MessagePool struct {
	pool sync.Pool
}

func NewMessagePool() *MessagePool {
	return &MessagePool{
		pool: sync.Pool{
			New: func() interface{} {
				m := quickfix.NewMessage()
				resetMessage(m)
				return m
			},
		},
	}
}

// Get returns a reset message from the pool.
func (mp *MessagePool) Get() *quickfix.Message {
	m := mp.pool.Get().(*quickfix.Message)
	resetMessage(m)
	return m
}

// Put resets the message before returning it to the pool.
func (mp *MessagePool) Put(m *quickfix.Message) {
	resetMessage(m)
	mp.pool.Put(m)
}

func resetMessage(m *quickfix.Message) {
	m.Header.Init()
	m.Body.Init()
	m.Trailer.Init()
	m.Header.Clear()
	m.Body.Clear()
	m.Trailer.Clear()
}

var execReportPool = NewMessagePool()

var execCount = int64(0)

func nextExecID() string {
	return strconv.FormatInt(atomic.AddInt64(&execCount, 1), 10)
}

// reasonText selects the Text(58) value for a rejection. Structural failures
// carry no client reason, so the message descriptor stands in.
func reasonText(reason *validation.RuleFailReason) string {
	if reason.ReasonClient != "" {
		return reason.ReasonClient
	}
	return string(reason.Message)
}

// sendValidationReport answers an inbound order with an ExecutionReport.
// A nil reason means the order passed validation and is acknowledged NEW;
// otherwise the order is REJECTED and the client reason goes in Text.
func sendValidationReport(o *NewOrder, reason *validation.RuleFailReason) error {
	msg := execReportPool.Get()
	execReportMsg := executionreport.FromMessage(msg)

	execReportMsg.SetMsgType(enum.MsgType_EXECUTION_REPORT)
	execReportMsg.SetOrderID(o.ClOrdID)
	execReportMsg.SetExecID(nextExecID())
	execReportMsg.SetClOrdID(o.ClOrdID)
	execReportMsg.SetAccount(o.Account)
	execReportMsg.SetSymbol(o.Symbol)
	execReportMsg.SetSide(o.Side)
	execReportMsg.SetOrderQty(o.OrderQty, 0)
	execReportMsg.SetCumQty(decimal.Zero, 0)
	execReportMsg.SetAvgPx(decimal.Zero, 2)
	execReportMsg.SetTransactTime(time.Now())

	if reason != nil {
		execReportMsg.SetExecType(enum.ExecType_REJECTED)
		execReportMsg.SetOrdStatus(enum.OrdStatus_REJECTED)
		execReportMsg.SetLeavesQty(decimal.Zero, 0)
		execReportMsg.SetText(reasonText(reason))
	} else {
		execReportMsg.SetExecType(enum.ExecType_NEW)
		execReportMsg.SetOrdStatus(enum.OrdStatus_NEW)
		execReportMsg.SetLeavesQty(o.OrderQty, 0)
	}

	err := quickfix.SendToTarget(execReportMsg, *o.SessionID)
	if err != nil {
		log.Printf("send err=%v", err)
		return err
	}

	execReportPool.Put(msg)

	return nil
}

// sendOrderReject rejects an order that could not even be mapped to the
// validation model, for example an unparseable option symbol.
func sendOrderReject(o *NewOrder, text string) error {
	msg := execReportPool.Get()
	execReportMsg := executionreport.FromMessage(msg)

	execReportMsg.SetMsgType(enum.MsgType_EXECUTION_REPORT)
	execReportMsg.SetOrderID(o.ClOrdID)
	execReportMsg.SetExecID(nextExecID())
	execReportMsg.SetClOrdID(o.ClOrdID)
	execReportMsg.SetAccount(o.Account)
	execReportMsg.SetSymbol(o.Symbol)
	execReportMsg.SetSide(o.Side)
	execReportMsg.SetOrderQty(o.OrderQty, 0)
	execReportMsg.SetCumQty(decimal.Zero, 0)
	execReportMsg.SetAvgPx(decimal.Zero, 2)
	execReportMsg.SetLeavesQty(decimal.Zero, 0)
	execReportMsg.SetTransactTime(time.Now())
	execReportMsg.SetExecType(enum.ExecType_REJECTED)
	execReportMsg.SetOrdStatus(enum.OrdStatus_REJECTED)
	execReportMsg.SetText(text)

	err := quickfix.SendToTarget(execReportMsg, *o.SessionID)
	if err != nil {
		log.Printf("send err=%v", err)
		return err
	}

	execReportPool.Put(msg)

	return nil
}
