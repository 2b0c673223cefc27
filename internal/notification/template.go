package notification

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ExpenseCreatedSubject = "New Expense Added"

// Formatter renders notification bodies for one locale and currency symbol
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter parses locale as a BCP 47 tag; an invalid or empty tag falls back to English
func NewFormatter(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: currencySymbol}
}

// Amount formats amount with two decimals and the locale's separators
func (f *Formatter) Amount(amount decimal.Decimal) string {
	return f.symbol + f.printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// ExpenseCreated builds the message sent after an expense is stored
func (f *Formatter) ExpenseCreated(recipient string, amount decimal.Decimal, category string, date time.Time) Message {
	return Message{
		Recipient: recipient,
		Subject:   ExpenseCreatedSubject,
		Body: fmt.Sprintf("A new expense of %s was added in category '%s' on %s.",
			f.Amount(amount), category, date.Format("02 Jan 2006")),
		Timestamp: time.Now().UTC(),
	}
}
