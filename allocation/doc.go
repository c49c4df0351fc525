// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation derives the school/user allocation snapshot.

LoadSchools parses the ;-separated schools reference CSV (BOM
tolerated); Allocate matches each collector-reported user to a school by
email domain, first school wins for shared domains, with a sentinel
bucket for unmatched users. BuildSnapshot combines the collector
metrics with the allocation into the persisted snapshot shape.

The Collector interface isolates the external scraper service;
HTTPCollector is the production implementation. Retry wraps flaky calls
with exponential backoff.
*/
package allocation
