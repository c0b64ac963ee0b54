// Package pkg provides the core libraries for arbor's recursive dependency management.
//
// # Overview
//
// Arbor installs trees of git-hosted source dependencies. Each project declares
// its dependencies in a TOML manifest; installing a project clones or updates
// every declared repository, records the resolved revisions back into the
// manifest, and recurses into each dependency's own manifest. The pkg
// directory is organized into six main areas:
//
//  1. [deps] - Dependency records: validation and merging of dependency lists
//  2. [manifest] - TOML manifest persistence
//  3. [gitvcs] - Git sync: clone, update, checkout, status, tag resolution
//  4. [manager] - Orchestration: recursive install and search path generation
//  5. [cache] - Remote-lookup caching (file, redis, null backends)
//  6. [render] - Dependency graph rendering (DOT, SVG)
//
// # Architecture
//
// The typical data flow through arbor:
//
//	arbor.toml manifest
//	         ↓
//	    [deps] package (validate + merge with declared list)
//	         ↓
//	    [gitvcs] package (clone/update/checkout working copies)
//	         ↓
//	    [manager] package (persist revisions, recurse, flatten)
//	         ↓
//	    installed tree + source search path
//
// # Quick Start
//
// Install a dependency tree and print its search path:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/arborpm/arbor/pkg/manager"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    m, err := manager.New(manager.Config{Root: "."})
//	    if err != nil {
//	        panic(err)
//	    }
//	    if err := m.Install(ctx); err != nil {
//	        panic(err)
//	    }
//	    path, err := m.GenPath(ctx)
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(path)
//	}
//
// Supporting packages: [errors] for structured error codes, [observability]
// for optional instrumentation hooks, and [buildinfo] for version metadata.
package pkg
