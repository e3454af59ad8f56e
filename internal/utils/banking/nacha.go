package banking

import (
	"fmt"
	"strings"
	"time"

	"github.com/agrisuite/genfin_backend/internal/apperrors"
	"github.com/agrisuite/genfin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NACHA fixed-format constants. Every record is exactly 94 ASCII characters
// and files are padded with 9-fill rows to a 10-record block boundary.
const (
	RecordLength   = 94
	BlockingFactor = 10

	serviceClassMixed   = "200"
	serviceClassCredits = "220"
	serviceClassDebits  = "225"
)

// FileParams identifies the originator and receiver in the file header.
// These come from configuration, not from the batch.
type FileParams struct {
	ImmediateDestination string // receiving bank routing number (9 digits)
	ImmediateOrigin      string // company federal id (10 characters)
	DestinationName      string
	OriginName           string
	CompanyName          string
	CompanyID            string // 10 characters, appears in batch header/control
	ODFIRouting          string // originating bank routing number (9 digits)
	CreatedAt            time.Time
}

// amountCents converts a decimal amount into whole cents, rejecting values
// with sub-cent precision and values too wide for the given field.
func amountCents(amount decimal.Decimal, width int) (int64, error) {
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has sub-cent precision", apperrors.ErrValidation, amount.String())
	}
	v := cents.IntPart()
	if v < 0 {
		return 0, fmt.Errorf("%w: amount %s is negative", apperrors.ErrValidation, amount.String())
	}
	if len(fmt.Sprintf("%d", v)) > width {
		return 0, fmt.Errorf("%w: amount %s does not fit %d digits of cents", apperrors.ErrFormatOverflow, amount.String(), width)
	}
	return v, nil
}

// alpha left-justifies and space-pads a text field, truncating to width.
func alpha(s string, width int) string {
	s = strings.ToUpper(s)
	if len(s) > width {
		s = s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// numeric right-justifies and zero-pads a numeric field.
func numeric(v int64, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}

// entryHash sums the first eight digits of each routing number, truncated to
// the low ten digits (mod 10^10) as the format requires.
func entryHash(routingNumbers []string) int64 {
	var sum int64
	for _, r := range routingNumbers {
		var first8 int64
		fmt.Sscanf(r[:8], "%d", &first8)
		sum += first8
	}
	return sum % 10000000000
}

// serviceClassFor picks the batch service class code from the entry mix.
func serviceClassFor(entries []domain.ACHEntry) string {
	hasCredit, hasDebit := false, false
	for _, e := range entries {
		if e.TransactionCode == domain.ACHCheckingDebit {
			hasDebit = true
		} else {
			hasCredit = true
		}
	}
	switch {
	case hasCredit && hasDebit:
		return serviceClassMixed
	case hasDebit:
		return serviceClassDebits
	default:
		return serviceClassCredits
	}
}

// GenerateFile renders one or more batches into a complete NACHA file.
// Validation runs over every record before a single byte is assembled, so a
// field overflow never produces a partial file.
func GenerateFile(params FileParams, batches []domain.ACHBatch) (string, error) {
	if len(batches) == 0 {
		return "", fmt.Errorf("%w: NACHA file requires at least one batch", apperrors.ErrValidation)
	}
	if err := ValidateRoutingNumber(params.ODFIRouting); err != nil {
		return "", err
	}
	for _, batch := range batches {
		if len(batch.Entries) == 0 {
			return "", fmt.Errorf("%w: batch %s has no entries", apperrors.ErrValidation, batch.BatchID)
		}
		for _, e := range batch.Entries {
			if err := ValidateRoutingNumber(e.RoutingNumber); err != nil {
				return "", err
			}
			if _, err := amountCents(e.Amount, 10); err != nil {
				return "", err
			}
		}
	}

	var records []string
	records = append(records, fileHeaderRecord(params))

	var fileEntryCount int
	var fileHash int64
	fileDebits, fileCredits := decimal.Zero, decimal.Zero

	for i, batch := range batches {
		batchNumber := int64(i + 1)
		batchRecords, batchDebits, batchCredits, hash, err := batchRecords(params, batch, batchNumber)
		if err != nil {
			return "", err
		}
		records = append(records, batchRecords...)
		fileEntryCount += len(batch.Entries)
		fileHash += hash
		fileDebits = fileDebits.Add(batchDebits)
		fileCredits = fileCredits.Add(batchCredits)
	}

	// Block count includes the file header, all batch records, the file
	// control record, and the 9-fill padding.
	recordCount := len(records) + 1
	blockCount := (recordCount + BlockingFactor - 1) / BlockingFactor

	fileDebitCents, err := amountCents(fileDebits, 12)
	if err != nil {
		return "", err
	}
	fileCreditCents, err := amountCents(fileCredits, 12)
	if err != nil {
		return "", err
	}

	fileControl := "9" +
		numeric(int64(len(batches)), 6) +
		numeric(int64(blockCount), 6) +
		numeric(int64(fileEntryCount), 8) +
		numeric(fileHash%10000000000, 10) +
		numeric(fileDebitCents, 12) +
		numeric(fileCreditCents, 12) +
		strings.Repeat(" ", 39)
	records = append(records, fileControl)

	for len(records)%BlockingFactor != 0 {
		records = append(records, strings.Repeat("9", RecordLength))
	}

	for _, r := range records {
		if len(r) != RecordLength {
			return "", fmt.Errorf("%w: record rendered to %d characters, want %d", apperrors.ErrInternal, len(r), RecordLength)
		}
	}

	return strings.Join(records, "\n") + "\n", nil
}

func fileHeaderRecord(params FileParams) string {
	return "1" +
		"01" +
		alpha(" "+params.ImmediateDestination, 10) +
		alpha(params.ImmediateOrigin, 10) +
		params.CreatedAt.Format("060102") +
		params.CreatedAt.Format("1504") +
		"A" + // file ID modifier
		"094" +
		fmt.Sprintf("%02d", BlockingFactor) +
		"1" +
		alpha(params.DestinationName, 23) +
		alpha(params.OriginName, 23) +
		strings.Repeat(" ", 8)
}

func batchRecords(params FileParams, batch domain.ACHBatch, batchNumber int64) ([]string, decimal.Decimal, decimal.Decimal, int64, error) {
	serviceClass := serviceClassFor(batch.Entries)
	odfi8 := params.ODFIRouting[:8]

	header := "5" +
		serviceClass +
		alpha(params.CompanyName, 16) +
		strings.Repeat(" ", 20) + // discretionary data
		alpha(params.CompanyID, 10) +
		string(batch.SECCode) +
		alpha(batch.CompanyEntryDesc, 10) +
		alpha(batch.EffectiveDate.Format("060102"), 6) + // descriptive date
		batch.EffectiveDate.Format("060102") +
		strings.Repeat(" ", 3) + // settlement date, filled by the operator
		"1" +
		odfi8 +
		numeric(batchNumber, 7)

	records := []string{header}
	debits, credits := decimal.Zero, decimal.Zero
	routingNumbers := make([]string, 0, len(batch.Entries))

	for seq, e := range batch.Entries {
		cents, err := amountCents(e.Amount, 10)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, 0, err
		}
		trace := e.TraceNumber
		if trace == "" {
			trace = odfi8 + numeric(int64(seq+1), 7)
		}
		if len(trace) != 15 {
			return nil, decimal.Zero, decimal.Zero, 0, fmt.Errorf("%w: trace number %q must be 15 digits", apperrors.ErrValidation, trace)
		}
		if len(e.AccountNumber) > 17 {
			return nil, decimal.Zero, decimal.Zero, 0, fmt.Errorf("%w: account number exceeds 17 characters", apperrors.ErrFormatOverflow)
		}

		detail := "6" +
			string(e.TransactionCode) +
			e.RoutingNumber[:8] +
			e.RoutingNumber[8:] +
			alpha(e.AccountNumber, 17) +
			numeric(cents, 10) +
			alpha(e.ReceiverID, 15) +
			alpha(e.ReceiverName, 22) +
			strings.Repeat(" ", 2) +
			"0" + // no addenda
			trace
		records = append(records, detail)

		if e.TransactionCode == domain.ACHCheckingDebit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
		routingNumbers = append(routingNumbers, e.RoutingNumber)
	}

	hash := entryHash(routingNumbers)
	debitCents, err := amountCents(debits, 12)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, 0, err
	}
	creditCents, err := amountCents(credits, 12)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, 0, err
	}

	control := "8" +
		serviceClass +
		numeric(int64(len(batch.Entries)), 6) +
		numeric(hash, 10) +
		numeric(debitCents, 12) +
		numeric(creditCents, 12) +
		alpha(params.CompanyID, 10) +
		strings.Repeat(" ", 19) + // message authentication code
		strings.Repeat(" ", 6) +
		odfi8 +
		numeric(batchNumber, 7)
	records = append(records, control)

	return records, debits, credits, hash, nil
}
