// Package generate runs a full generation pass: it renders the
// documentation JSON, the flow diagram, and the identifier-set declaration
// for a Documentation, then writes all three.
//
// Rendering happens first and is all-or-nothing; a render failure aborts
// before anything is written. The three writes then run concurrently and
// are best-effort: each one runs to completion, completed writes are never
// reverted, and every failure is reported as an *ArtifactError naming the
// artifact.
//
//	doc, err := collector.Build()
//	if err != nil {
//	    return err
//	}
//	res, err := generate.Run(ctx, doc, config.Defaults(),
//	    generate.WithLogger(logger),
//	)
//	var artErr *generate.ArtifactError
//	if errors.As(err, &artErr) {
//	    log.Printf("%s not written to %s", artErr.Kind, artErr.Path)
//	}
package generate
