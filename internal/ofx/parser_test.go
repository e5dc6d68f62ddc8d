package ofx

import (
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2026011501
<NAME>POS PURCHASE STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2026012001
<NAME>ACME CORP PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFileBankStatement(t *testing.T) {
	parser := NewParser()

	rows, err := parser.ParseFile(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	coffee := rows[0]
	assert.Equal(t, model.TransactionExpense, coffee.Type)
	assert.InDelta(t, 25.50, coffee.Amount, 1e-9)
	assert.Equal(t, "STARBUCKS STORE #1234", coffee.MerchantName)
	assert.Equal(t, "1234567890", coffee.AccountID)
	assert.Equal(t, 2026, coffee.Date.Year())
	assert.Equal(t, time.January, coffee.Date.Month())

	payroll := rows[1]
	assert.Equal(t, model.TransactionIncome, payroll.Type)
	assert.InDelta(t, 1500.00, payroll.Amount, 1e-9)
	assert.Equal(t, "ACME CORP PAYROLL", payroll.MerchantName)
}

func TestParseFileLowercaseSeverity(t *testing.T) {
	// Some banks emit mixed-case SEVERITY; the preprocessor fixes it.
	broken := strings.Replace(sampleBankOFX, "<SEVERITY>INFO", "<SEVERITY>Info", 2)

	parser := NewParser()
	rows, err := parser.ParseFile(strings.NewReader(broken))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseFileGarbage(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(strings.NewReader("this is not an OFX file"))
	assert.Error(t, err)
}

func TestExtractMerchantNameStripsPrefixes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "pos purchase prefix", raw: "POS PURCHASE COFFEE HOUSE", want: "COFFEE HOUSE"},
		{name: "ach debit prefix", raw: "ACH DEBIT RENT LLC", want: "RENT LLC"},
		{name: "leading date", raw: "01/15 HARDWARE STORE", want: "HARDWARE STORE"},
		{name: "plain name untouched", raw: "HARDWARE STORE", want: "HARDWARE STORE"},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{Name: ofxgo.String(tt.raw)}
			assert.Equal(t, tt.want, parser.extractMerchantName(tx))
		})
	}
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("purchase"))
	assert.False(t, isGenericDescription("STARBUCKS"))
}
