// Package attention normalizes heterogeneous work signals into one feed
// shape and classifies them into urgency bands.
//
// Two independent systems feed it: the decision engine (trade-workflow
// rules) and the attention tracker (projects, notifications, team
// alignment). Adapters convert both into FeedItem, MergeAndDedup collapses
// rows that describe the same underlying entity, and band assignment
// splits the merged feed into NOW, SOON, and AWARE with a dedicated sort
// per band. Everything here is pure; callers supply the clock.
package attention
