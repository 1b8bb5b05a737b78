package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/bistroboss/server/internal/models"
)

// Indexer mirrors menu writes into the search index.
type Indexer struct {
	Client    *elasticsearch.Client
	IndexName string
}

func (i *Indexer) Index(ctx context.Context, item models.MenuItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("es: marshal menu item: %w", err)
	}

	res, err := i.Client.Index(
		i.IndexName,
		bytes.NewReader(data),
		i.Client.Index.WithDocumentID(strconv.FormatUint(uint64(item.ID), 10)),
		i.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: index menu item %d: %w", item.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es: index menu item %d: %s", item.ID, res.Status())
	}
	return nil
}

func (i *Indexer) Delete(ctx context.Context, id uint) error {
	res, err := i.Client.Delete(
		i.IndexName,
		strconv.FormatUint(uint64(id), 10),
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete menu item %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete menu item %d: %s", id, res.Status())
	}
	return nil
}
