package data

import (
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/conf"
	"github.com/iWorld-y/monitor_finder/app/finder/pkg/analysis"
)

const defaultSessionTTL = 2 * time.Hour

type entry struct {
	result  *analysis.Result
	expires time.Time
}

// Data 进程内的会话数据，重启即丢失
type Data struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	ttl := defaultSessionTTL
	if c != nil && c.Session != nil && c.Session.Ttl != "" {
		d, err := time.ParseDuration(c.Session.Ttl)
		if err != nil {
			return nil, nil, err
		}
		ttl = d
	}

	d := &Data{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		d.mu.Lock()
		d.sessions = make(map[string]entry)
		d.mu.Unlock()
	}
	return d, cleanup, nil
}
