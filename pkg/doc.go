// Package pkg provides the core libraries for storyswift.
//
// # Overview
//
// Storyswift turns Interface Builder storyboards and xibs into SwiftUI
// source files. The pkg directory is organized into four main areas:
//
//  1. Domain: [storyboard], [component], [navigation] and [swiftui]
//  2. Orchestration: [pipeline] (load → detect mode → generate)
//  3. Infrastructure: [cache], [sink], [config], [observability]
//  4. Surfaces: [api] and [render/nodelink]
//
// # Architecture
//
// The typical data flow through storyswift:
//
//	Main.storyboard / Cell.xib
//	         ↓
//	    [storyboard] package (parse the XML document)
//	         ↓
//	    [navigation] package (flows and tabs)   [component] package (controls)
//	         ↓
//	    [swiftui] package (render units)
//	         ↓
//	    [sink] package (run folder, S3 or MongoDB)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Convert(ctx, pipeline.Options{Path: "Main.storyboard"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := sink.NewDirSink(sink.DirOptions{Root: "."})
//	for _, o := range sink.WriteAll(ctx, out, result.Units, 0) {
//	    fmt.Println(o.Location, o.Err)
//	}
//
// [storyboard]: github.com/matzehuels/storyswift/pkg/storyboard
// [component]: github.com/matzehuels/storyswift/pkg/component
// [navigation]: github.com/matzehuels/storyswift/pkg/navigation
// [swiftui]: github.com/matzehuels/storyswift/pkg/swiftui
// [pipeline]: github.com/matzehuels/storyswift/pkg/pipeline
// [cache]: github.com/matzehuels/storyswift/pkg/cache
// [sink]: github.com/matzehuels/storyswift/pkg/sink
// [config]: github.com/matzehuels/storyswift/pkg/config
// [observability]: github.com/matzehuels/storyswift/pkg/observability
// [api]: github.com/matzehuels/storyswift/pkg/api
// [render/nodelink]: github.com/matzehuels/storyswift/pkg/render/nodelink
package pkg
