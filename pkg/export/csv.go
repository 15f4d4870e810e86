package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/klokku/eventboard/pkg/event"
	log "github.com/sirupsen/logrus"
)

type CsvRenderer struct{}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

func (c *CsvRenderer) Render(w io.Writer, events []event.Event) (int, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "date", "title", "category"}); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return 0, err
	}
	for _, e := range events {
		if err := writer.Write([]string{strconv.Itoa(e.Id), e.Date, e.Title, e.Category}); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return 0, err
	}
	return len(events), nil
}
