// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical reads into one database query.
package dedupe

import "golang.org/x/sync/singleflight"

// StatsGroup deduplicates outcome statistics queries keyed by
// "stats:<skin>" (an empty skin aggregates every skin).
var StatsGroup singleflight.Group

// RecentGroup deduplicates recent-record listings keyed by "recent:<limit>".
var RecentGroup singleflight.Group
