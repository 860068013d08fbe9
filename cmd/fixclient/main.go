package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	fix44noml "github.com/quickfixgo/fix44/newordermultileg"
	fix44nos "github.com/quickfixgo/fix44/newordersingle"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

type InitiatorApp struct {
	sessionID *quickfix.SessionID
}

func (a *InitiatorApp) OnCreate(sessionID quickfix.SessionID) {
	a.sessionID = &sessionID
}

func (a *InitiatorApp) OnLogon(sessionID quickfix.SessionID) {
	log.Println("Logon success", sessionID)
	sendStockOrder(sessionID)
	sendDuplicateLegOrder(sessionID)
}

func (a *InitiatorApp) OnLogout(sessionID quickfix.SessionID)                       {}
func (a *InitiatorApp) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}
func (a *InitiatorApp) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}
func (a *InitiatorApp) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}
func (a *InitiatorApp) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	ordStatus, _ := msg.Body.GetString(tag.OrdStatus)
	text, _ := msg.Body.GetString(tag.Text)
	clOrdID, _ := msg.Body.GetString(tag.ClOrdID)
	log.Printf("report ClOrdID=%s OrdStatus=%s Text=%q", clOrdID, ordStatus, text)
	return nil
}

// === Message sender ===

// sendStockOrder should come back NEW unless the symbol is restricted.
func sendStockOrder(sessionID quickfix.SessionID) {
	order := fix44nos.New(
		field.NewClOrdID(""),
		field.NewSide(enum.Side_BUY),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	order.SetSymbol("IBM")
	order.SetAccount("011C399158")
	order.SetPrice(decimal.NewFromInt(147), 0)
	order.SetOrderQty(decimal.NewFromInt(100), 0)
	order.SetSenderCompID(sessionID.SenderCompID)
	order.SetTargetCompID(sessionID.TargetCompID)
	order.SetClOrdID(randSeq(17))
	err := quickfix.Send(order)
	log.Println(err)
}

// sendDuplicateLegOrder repeats the same option leg twice and should come
// back REJECTED.
func sendDuplicateLegOrder(sessionID quickfix.SessionID) {
	order := fix44noml.New(
		field.NewClOrdID(""),
		field.NewSide(enum.Side_BUY),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	order.SetSymbol("IBM")
	order.SetAccount("011C399158")
	order.SetOrderQty(decimal.NewFromInt(10), 0)

	legs := fix44noml.NewNoLegsRepeatingGroup()
	for i := 0; i < 2; i++ {
		leg := legs.Add()
		leg.SetLegSymbol(".IBM7140419C430")
		leg.SetLegRatioQty(decimal.NewFromInt(1), 0)
	}
	order.SetNoLegs(legs)

	order.SetSenderCompID(sessionID.SenderCompID)
	order.SetTargetCompID(sessionID.TargetCompID)
	order.SetClOrdID(randSeq(17))
	err := quickfix.Send(order)
	log.Println(err)
}

func main() {
	cfgPath := os.Args[1]
	log.Println("cfgPath:", cfgPath)
	app := &InitiatorApp{}

	cfg, err := os.Open(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	defer cfg.Close() // nolint

	settings, err := quickfix.ParseSettings(cfg)
	if err != nil {
		log.Fatal(err)
	}

	storeFactory := quickfix.NewMemoryStoreFactory()
	logFactory, _ := file.NewLogFactory(settings)
	initiator, err := quickfix.NewInitiator(app, storeFactory, settings, logFactory)
	if err != nil {
		log.Fatal(err)
	}
	err = initiator.Start()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Initiator started...")
	select {}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
