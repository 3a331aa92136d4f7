// Package common provides shared output helpers used by the CLI commands.
package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows injecting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// delimiter used when writing CSV files. Comma by default.
var delimiter rune = ','

// SetDelimiter changes the CSV field delimiter for subsequent writes.
func SetDelimiter(d rune) {
	delimiter = d
}

// WriteTransactionsToCSV writes the transactions to csvFile in CSV format.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	log.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteTransactionsCSV(transactions, file); err != nil {
		return err
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
	return nil
}

// WriteTransactionsCSV writes the transactions to w in CSV format.
func WriteTransactionsCSV(transactions []models.Transaction, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(&transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsJSON writes the transactions to w as a JSON array.
func WriteTransactionsJSON(transactions []models.Transaction, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transactions); err != nil {
		return fmt.Errorf("error writing JSON data: %w", err)
	}
	return nil
}
