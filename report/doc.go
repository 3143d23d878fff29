// Package report delivers a matched string to a local listener as a single
// UDP datagram.
//
// Delivery is best effort: nothing is retried and nothing is acknowledged.
// In the raw format the datagram carries the UTF-8 bytes of the text and
// nothing else; the JSON format wraps the text together with the pattern and
// the match offsets.
package report
