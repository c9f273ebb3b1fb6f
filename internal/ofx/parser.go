// Package ofx parses OFX/QFX bank statements into bulk-import items.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/every-penny/internal/engine"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns import items ready for
// the bulk import pipeline.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]engine.ImportItem, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var items []engine.ImportItem
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			items = append(items, p.processTranList(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			items = append(items, p.processTranList(stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_items", len(items),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return items, nil
}

func (p *Parser) processTranList(list *ofxgo.TransactionList) []engine.ImportItem {
	if list == nil {
		return nil
	}

	items := make([]engine.ImportItem, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		items = append(items, p.convertTransaction(ofxTx))
	}
	return items
}

// convertTransaction maps one OFX transaction to an import item. OFX
// amounts are negative for debits; spend is positive here, so the sign
// flips. A credit (refund or income) comes out negative.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) engine.ImportItem {
	return engine.ImportItem{
		AmountCents: -ratToCents(&ofxTx.TrnAmt.Rat),
		Note:        extractNote(ofxTx),
		OccurredAt:  ofxTx.DtPosted.Time.UTC(),
	}
}

// ratToCents converts a decimal amount to integer cents, rounding to
// the nearest cent. Exact rational arithmetic avoids float drift.
func ratToCents(amount *big.Rat) int64 {
	cents := new(big.Rat).Mul(amount, big.NewRat(100, 1))
	v, err := strconv.ParseInt(cents.FloatString(0), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// extractNote builds the best available transaction note from OFX
// payee, name, and memo fields.
func extractNote(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	memo := strings.TrimSpace(string(tx.Memo))

	if memo != "" && isGenericDescription(name) {
		return memo
	}
	if name == "" {
		return memo
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic to
// be useful as a note.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
