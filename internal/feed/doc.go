// Package feed composes the task list feed.
//
// Two projections are derived from a task snapshot:
//
//   - the regular feed (BuildRegular): every task as Content, or, for
//     completed tasks that lose the visibility roll, as InvisibleContent;
//     each task may be followed by an advert drawn from a Catalog; the whole
//     sequence is optionally shuffled.
//   - the MPH feed (BuildMPH): every task as Content, in input order.
//
// The builders are pure: randomness comes from an injected Rand, so a seeded
// source makes them deterministic.
//
// Feed is the stateful controller. It fetches tasks from a Store, keeps both
// projections current, and rebuilds them whenever the store reports a change.
// Store fetch errors never reach callers: they are logged and the feed is
// rebuilt from an empty task list.
package feed
