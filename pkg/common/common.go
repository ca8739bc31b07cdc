package common

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	node, err := snowflake.NewNode(int64(rand.Intn(1023) + 1))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a process-unique snowflake id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake id in base36 string form.
func UUID() string {
	return snowflakeNode.Generate().Base36()
}

// OrderNumber builds a human-facing order number: date prefix + snowflake tail.
func OrderNumber() string {
	id := snowflakeNode.Generate().Int64()
	return fmt.Sprintf("%s%d", time.Now().Format("20060102"), id%1000000000)
}

// InSlice reports whether v is contained in vals, ignoring case.
func InSlice(v string, vals []string) bool {
	for _, s := range vals {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MustMkdir creates dir with parents, panicking on failure.
func MustMkdir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}
}
