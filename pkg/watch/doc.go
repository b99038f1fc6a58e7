// Package watch reloads a feature model when its file changes.
//
// FileWatcher turns fsnotify events into debounced reload calls. Reloader
// parses and lints the file and swaps the new model in atomically; a model
// that fails to parse or lint is rejected and the previous one stays current.
//
//	reloader := watch.NewReloader(path, watch.WithOnReload(func(m *featuremodel.Model, issues *lint.IssueList) {
//		// re-validate sessions against m
//	}))
//	if err := reloader.Load(); err != nil {
//		return err
//	}
//	fw, _ := watch.NewFileWatcher(&watch.Config{Path: path}, nil)
//	return fw.Watch(ctx, reloader.Load)
package watch
