// Package presets persists named duration values to a JSON file.
//
// A preset gives a memorable name to a duration ("standup" for PT15M,
// "sprint" for P2W). The file stores durations as ISO 8601 text so it
// can be inspected and edited by hand. The filesystem is abstracted
// through afero; production code passes afero.NewOsFs(), tests use
// afero.NewMemMapFs().
package presets
