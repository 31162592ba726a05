package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	signalsKeyPrefix = "signals||"
	musclesKeyPrefix = "muscles||"

	// codec id + xxhash64 of the raw payload
	entryHeaderLen = 1 + 8

	minCacheSizeMB = 1
)

// Entry is a cached backend payload, decompressed.
type Entry struct {
	Data []byte
	ETag string
}

// SignalCache keeps the raw emtData JSON of trainings and the muscle lookups
// in an in-process freecache ring. Signals are compressed with the configured
// codec, muscle lists are small and stored as is.
type SignalCache struct {
	cache         *freecache.Cache
	sizeMB        int
	codec         Codec
	signalsTTL    time.Duration
	musclesTTL    time.Duration
	counterResult *prometheus.CounterVec
}

type SignalCacheParams struct {
	SizeMB     int
	Codec      Codec
	SignalsTTL time.Duration
	MusclesTTL time.Duration
	// CounterResult is labeled by "result": hit, miss, error or oversize
	CounterResult *prometheus.CounterVec
}

func NewSignalCache(params SignalCacheParams) *SignalCache {
	sizeMB := params.SizeMB
	if sizeMB < minCacheSizeMB {
		sizeMB = minCacheSizeMB
	}
	codec := params.Codec
	if codec == nil {
		codec = ZstdCodec{}
	}

	return &SignalCache{
		cache:         freecache.NewCache(sizeMB * 1024 * 1024),
		sizeMB:        sizeMB,
		codec:         codec,
		signalsTTL:    params.SignalsTTL,
		musclesTTL:    params.MusclesTTL,
		counterResult: params.CounterResult,
	}
}

// ETag is the strong entity tag of a payload, as sent in the ETag header.
func ETag(raw []byte) string {
	return etagFromSum(xxhash.Sum64(raw))
}

func etagFromSum(sum uint64) string {
	return `"` + strconv.FormatUint(sum, 16) + `"`
}

func signalsKey(trainingID int) []byte {
	return []byte(signalsKeyPrefix + strconv.Itoa(trainingID))
}

func musclesKey(trainingID, athleteID string) []byte {
	return []byte(musclesKeyPrefix + trainingID + "||" + athleteID)
}

func (c *SignalCache) GetSignals(trainingID int) (*Entry, bool) {
	return c.get(signalsKey(trainingID))
}

// SetSignals stores the raw emtData payload and returns it with its ETag.
// A failure to store is logged and not returned: the caller still has the payload.
func (c *SignalCache) SetSignals(trainingID int, raw []byte) *Entry {
	return c.set(signalsKey(trainingID), raw, c.codec, c.signalsTTL)
}

func (c *SignalCache) InvalidateSignals(trainingID int) {
	c.cache.Del(signalsKey(trainingID))
}

func (c *SignalCache) GetMuscles(trainingID, athleteID string) (*Entry, bool) {
	return c.get(musclesKey(trainingID, athleteID))
}

func (c *SignalCache) SetMuscles(trainingID, athleteID string, raw []byte) *Entry {
	return c.set(musclesKey(trainingID, athleteID), raw, NoneCodec{}, c.musclesTTL)
}

func (c *SignalCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

func (c *SignalCache) Clear() {
	c.cache.Clear()
}

func (c *SignalCache) get(key []byte) (*Entry, bool) {
	stored, err := c.cache.Get(key)
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("signal cache: get %s: %s", key, err)
		}
		c.count("miss")
		return nil, false
	}

	entry, err := decodeEntry(stored)
	if err != nil {
		log.Errorf("signal cache: decode %s: %s", key, err)
		c.cache.Del(key)
		c.count("error")
		return nil, false
	}

	c.count("hit")
	return entry, true
}

func (c *SignalCache) set(key, raw []byte, codec Codec, ttl time.Duration) *Entry {
	sum := xxhash.Sum64(raw)
	entry := &Entry{
		Data: raw,
		ETag: etagFromSum(sum),
	}

	payload, err := codec.Encode(raw)
	if errors.Is(err, errIncompressible) {
		codec = NoneCodec{}
		payload, err = codec.Encode(raw)
	}
	if err != nil {
		log.Errorf("signal cache: encode %s with %s: %s", key, codec.Name(), err)
		c.count("error")
		return entry
	}

	stored := make([]byte, entryHeaderLen, entryHeaderLen+len(payload))
	stored[0] = codec.id()
	binary.BigEndian.PutUint64(stored[1:entryHeaderLen], sum)
	stored = append(stored, payload...)

	// freecache rejects entries bigger than 1/1024 of the cache size,
	// those trainings are then fetched from the backend every time
	if err := c.cache.Set(key, stored, ttlSeconds(ttl)); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			log.Warnf("signal cache: %s is %d bytes, over the entry limit of a %d MB cache", key, len(stored), c.sizeMB)
			c.count("oversize")
			return entry
		}
		log.Errorf("signal cache: set %s (%d bytes): %s", key, len(stored), err)
		c.count("error")
	}
	return entry
}

func decodeEntry(stored []byte) (*Entry, error) {
	if len(stored) < entryHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptEntry, len(stored))
	}

	codec, err := codecByID(stored[0])
	if err != nil {
		return nil, err
	}
	sum := binary.BigEndian.Uint64(stored[1:entryHeaderLen])

	raw, err := codec.Decode(stored[entryHeaderLen:])
	if err != nil {
		return nil, err
	}
	if xxhash.Sum64(raw) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptEntry)
	}

	return &Entry{
		Data: raw,
		ETag: etagFromSum(sum),
	}, nil
}

func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	secs := int(ttl / time.Second)
	if secs == 0 {
		secs = 1
	}
	return secs
}

func (c *SignalCache) count(result string) {
	if c.counterResult != nil {
		c.counterResult.WithLabelValues(result).Inc()
	}
}
