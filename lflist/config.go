package lflist

import s "github.com/bnclabs/gosettings"

// Emptyslot flag value of a slot holding no data. A push reserves a
// slot while its flag is still Emptyslot and publishes by swapping
// the caller's tag into it.
const Emptyslot = uint64(0)

// Sentinelslot flag value of a permanent hole, a slot that lost a
// pop/push race and holds no data but must not stop scanning.
const Sentinelslot = uint64(1)

// Defaultcapacity number of slots per page. Small values increase
// page churn, large values increase per-page memory and drain
// latency.
const Defaultcapacity = int64(256)

// Defaultsettings for lflist, can be used as argument to NewList.
//
// "buffer.capacity" (int64, default: 256)
//		Number of slots in each page of the list.
func Defaultsettings() s.Settings {
	return s.Settings{
		"buffer.capacity": Defaultcapacity,
	}
}
