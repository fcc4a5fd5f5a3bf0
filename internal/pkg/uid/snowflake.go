package uid

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates sortable int64 IDs safe across multiple nodes.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator whose node number is derived from the
// host identity, so replicas do not collide.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber())
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() int64 {
	src, err := os.Hostname()
	if err != nil || src == "" {
		if b, rerr := os.ReadFile("/etc/machine-id"); rerr == nil {
			src = string(b)
		}
	}

	h := fnv.New32a()
	h.Write([]byte(src))

	// snowflake node numbers are 10 bits
	return int64(h.Sum32() % 1024)
}
