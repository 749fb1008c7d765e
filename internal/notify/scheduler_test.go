package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu        sync.Mutex
	delivered []Reminder
}

func (c *capture) fn(r Reminder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered = append(c.delivered, r)
}

func (c *capture) all() []Reminder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Reminder(nil), c.delivered...)
}

func TestScheduleDelivers(t *testing.T) {
	c := &capture{}
	s := NewTimerScheduler(c.fn)
	defer s.Stop()

	s.Schedule(Reminder{TaskID: "t1", Body: "soon", At: time.Now().Add(20 * time.Millisecond)})

	require.Eventually(t, func() bool {
		return len(c.all()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "t1", c.all()[0].TaskID)
	assert.Zero(t, s.Pending())
}

func TestSchedulePastIsNoOp(t *testing.T) {
	c := &capture{}
	s := NewTimerScheduler(c.fn)
	defer s.Stop()

	s.Schedule(Reminder{TaskID: "t1", At: time.Now().Add(-time.Minute)})
	s.Schedule(Reminder{TaskID: "t2", At: time.Now()})

	assert.Zero(t, s.Pending())
	assert.Empty(t, c.all())
}

func TestScheduleReplacesPending(t *testing.T) {
	c := &capture{}
	s := NewTimerScheduler(c.fn)
	defer s.Stop()

	s.Schedule(Reminder{TaskID: "t1", Body: "first", At: time.Now().Add(30 * time.Millisecond)})
	s.Schedule(Reminder{TaskID: "t1", Body: "second", At: time.Now().Add(40 * time.Millisecond)})
	assert.Equal(t, 1, s.Pending())

	require.Eventually(t, func() bool {
		return len(c.all()) >= 1
	}, time.Second, 5*time.Millisecond)

	// only the replacement fires
	time.Sleep(60 * time.Millisecond)
	delivered := c.all()
	require.Len(t, delivered, 1)
	assert.Equal(t, "second", delivered[0].Body)
}

func TestCancel(t *testing.T) {
	c := &capture{}
	s := NewTimerScheduler(c.fn)
	defer s.Stop()

	s.Schedule(Reminder{TaskID: "t1", At: time.Now().Add(30 * time.Millisecond)})
	s.Cancel("t1")
	assert.Zero(t, s.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, c.all())

	// cancelling an unknown id is fine
	s.Cancel("ghost")
}

func TestStopCancelsEverything(t *testing.T) {
	c := &capture{}
	s := NewTimerScheduler(c.fn)

	for _, id := range []string{"a", "b", "c"} {
		s.Schedule(Reminder{TaskID: id, At: time.Now().Add(time.Hour)})
	}
	require.Equal(t, 3, s.Pending())

	s.Stop()
	assert.Zero(t, s.Pending())
}
