package utils

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
)

// ImportQuotesFromCsv reads a quote panel produced by the upstream
// range-filter stage.
func ImportQuotesFromCsv(path string) ([]*optionmodels.OptionQuote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ImportQuotesFromCsv: error opening %s: %v", path, err)
	}
	defer f.Close()

	var dtos []*optionmodels.OptionQuoteDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("ImportQuotesFromCsv: error unmarshalling %s: %v", path, err)
	}

	quotes := make([]*optionmodels.OptionQuote, 0, len(dtos))
	for i, dto := range dtos {
		quote, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("ImportQuotesFromCsv: row %d: %w", i+1, err)
		}

		quotes = append(quotes, quote)
	}

	log.Infof("Imported %d quotes from %s", len(quotes), path)

	return quotes, nil
}

func ExportIVFilteredToCsv(path string, rows []*optionmodels.IVFilteredQuote) error {
	dtos := make([]*optionmodels.IVFilteredQuoteDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, optionmodels.NewIVFilteredQuoteDTO(row))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ExportIVFilteredToCsv: error creating %s: %v", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&dtos, f); err != nil {
		return fmt.Errorf("ExportIVFilteredToCsv: error marshalling to %s: %v", path, err)
	}

	log.Infof("Exported %d IV-filtered rows to %s", len(rows), path)

	return nil
}

func ExportPCPFilteredToCsv(path string, rows []*optionmodels.PCPFilteredQuote) error {
	dtos := make([]*optionmodels.PCPFilteredQuoteDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, optionmodels.NewPCPFilteredQuoteDTO(row))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ExportPCPFilteredToCsv: error creating %s: %v", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&dtos, f); err != nil {
		return fmt.Errorf("ExportPCPFilteredToCsv: error marshalling to %s: %v", path, err)
	}

	log.Infof("Exported %d PCP-filtered rows to %s", len(rows), path)

	return nil
}
