package feed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"stockfeed/importer/internal/domain"
)

// The feed is caret-delimited ISO-8859-1 text. The article number column is
// kept opaque so leading zeros and non-numeric codes survive.
const fieldSeparator = '^'

var requiredColumns = []string{
	"Artnr",
	"Merk",
	"Omschrijving",
	"EanCode",
	"VerkoopPrijs",
	"Categorie",
	"Voorraad",
	"Eigenschap",
	"Gew.",
	"FTP",
	"ShortCde",
	"OrigNr",
	"AdviesPrijs",
	"BestEenh",
}

// Parse decodes the raw feed bytes into RawRecords. It fails with ErrParse
// when the header set does not match the expected feed shape.
func Parse(data []byte) ([]domain.RawRecord, error) {
	decoded := transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder())

	reader := csv.NewReader(decoded)
	reader.Comma = fieldSeparator
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read feed header: %v", domain.ErrParse, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q in feed header", domain.ErrParse, col)
		}
	}

	records := make([]domain.RawRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read feed row: %v", domain.ErrParse, err)
		}

		field := func(name string) string {
			return row[index[name]]
		}

		records = append(records, domain.RawRecord{
			Artnr:        field("Artnr"),
			Merk:         field("Merk"),
			Omschrijving: field("Omschrijving"),
			EanCode:      field("EanCode"),
			VerkoopPrijs: field("VerkoopPrijs"),
			Categorie:    field("Categorie"),
			Voorraad:     field("Voorraad"),
			Eigenschap:   field("Eigenschap"),
			Gewicht:      field("Gew."),
			Afbeelding:   field("FTP"),
			ShortCde:     field("ShortCde"),
			OrigNr:       field("OrigNr"),
			AdviesPrijs:  field("AdviesPrijs"),
			BestEenh:     field("BestEenh"),
		})
	}

	log.Debugf("Parsed %d feed rows", len(records))
	return records, nil
}
