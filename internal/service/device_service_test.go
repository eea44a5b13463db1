//go:build unit

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeviceTracker_RecordSeenKeepsFirstSeen(t *testing.T) {
	tracker := NewDeviceTracker()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := tracker.RecordSeen("A", "192.168.1.10", t0)
	require.Equal(t, t0, first.FirstSeen)
	require.Equal(t, t0, first.LastSeen)

	second := tracker.RecordSeen("A", "192.168.1.11", t0.Add(time.Minute))
	require.Equal(t, t0, second.FirstSeen)
	require.Equal(t, t0.Add(time.Minute), second.LastSeen)
	require.Equal(t, "192.168.1.11", second.IPAddress)

	tracker.RecordSeen("0B", "10.0.0.2", t0)
	all := tracker.ListAll()
	require.Len(t, all, 2)
	require.Equal(t, "0B", all[0].DeviceID)
	require.Equal(t, "A", all[1].DeviceID)
}

func TestDeviceTracker_ConcurrentUpdates(t *testing.T) {
	tracker := NewDeviceTracker()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("dev-%d", i%4)
			tracker.RecordSeen(id, fmt.Sprintf("10.0.0.%d", i), t0.Add(time.Duration(i)*time.Second))
		}(i)
	}
	wg.Wait()

	all := tracker.ListAll()
	require.Len(t, all, 4)
	for _, d := range all {
		require.False(t, d.LastSeen.Before(d.FirstSeen))
	}
}

func TestDeviceService_RecordPowerOn(t *testing.T) {
	repo := newDeviceRepoStub()
	tracker := NewDeviceTracker()
	svc := NewDeviceService(repo, tracker)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	d, err := svc.RecordPowerOn(context.Background(), PowerOn{DeviceID: " 587A628A4042 ", AccountID: "acc", Name: "Kitchen", IPAddress: "192.168.1.20"})
	require.NoError(t, err)
	require.Equal(t, "587A628A4042", d.DeviceID)
	require.Equal(t, t0, d.FirstSeen)

	svc.now = func() time.Time { return t0.Add(time.Hour) }
	d, err = svc.RecordPowerOn(context.Background(), PowerOn{DeviceID: "587A628A4042", AccountID: "acc", IPAddress: "192.168.1.21"})
	require.NoError(t, err)
	require.Equal(t, t0, d.FirstSeen)
	require.Equal(t, t0.Add(time.Hour), d.LastSeen)
	require.Equal(t, int64(1), d.Version)

	stored, err := repo.GetByID(context.Background(), "587A628A4042")
	require.NoError(t, err)
	require.Equal(t, "192.168.1.21", stored.IPAddress)

	speakers := svc.Speakers()
	require.Len(t, speakers, 1)
	require.Equal(t, "192.168.1.21", speakers[0].IPAddress)
}

func TestDeviceService_RecordPowerOnRequiresID(t *testing.T) {
	svc := NewDeviceService(newDeviceRepoStub(), NewDeviceTracker())
	_, err := svc.RecordPowerOn(context.Background(), PowerOn{DeviceID: "  "})
	require.Error(t, err)
	require.Empty(t, svc.Speakers())
}
