// Package crawler drives a path-traversal crawl.
//
// # Architecture
//
// The Engine owns a frontier.Frontier for the duration of one run and
// processes it strictly sequentially:
//
//  1. take the oldest pending path (it stays pending until its attempt ends)
//  2. fetch it through the Fetcher
//  3. on a non-empty 200, store the bytes in the Sink, then let the
//     scan.Scanner, the handler.Registry and an optional Analyzer inspect them
//  4. merge discovered paths accepted by scan.Accept into pending
//  5. move the path to done
//
// Empty bodies and failed fetches are concluded the same way without
// inspection and are never retried. A failing Sink, a relative path in the
// frontier, or a cancelled context end the run early. In every case the
// Saver persists the frontier exactly once before Run returns.
//
// # Usage
//
//	store := frontier.NewFileStore("out")
//	f, err := store.Load("filelist.txt", []string{"/etc/passwd"})
//	...
//	engine := crawler.NewEngine(target, f, client, sink.NewDir("out"), store,
//	    crawler.WithLogger(logger),
//	    crawler.WithObserver(console),
//	)
//	report, err := engine.Run(ctx)
package crawler
