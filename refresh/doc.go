// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package refresh schedules the collect → allocate → persist cycle.

Job.Run executes RunOnce at every interval tick until the context is
cancelled. RunOnce retries the collector, rebuilds the allocation from
the schools CSV and replaces the snapshot atomically (temp file +
rename), so a failed run leaves the previous snapshot intact.
*/
package refresh
