package clickhouse

import (
	"fmt"

	clickhouse_go "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/partnerflow/partnerflow/internal/config"
)

// Client wraps the ClickHouse connection used by the conversion event store
type Client struct {
	conn driver.Conn
}

func NewClient(config *config.Configuration) (*Client, error) {
	options := config.ClickHouse.GetClientOptions()
	conn, err := clickhouse_go.Open(options)
	if err != nil {
		return nil, fmt.Errorf("init clickhouse client: %w", err)
	}

	return &Client{conn: conn}, nil
}

func (c *Client) GetConn() driver.Conn {
	return c.conn
}

func (c *Client) Close() error {
	return c.conn.Close()
}
