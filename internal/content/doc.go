// Package content serves the site's dynamic content and collects client
// analytics events.
//
// Published blog posts and testimonials are read through a cache, so a burst
// of page views costs one query per TTL. Events are checked against an
// allow-list before they are stored, and PruneTask deletes old ones on a
// schedule.
package content
