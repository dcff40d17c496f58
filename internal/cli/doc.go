// Package cli implements the interactive ADHDo shell.
//
// The App wires the SQLite store, the change bus, the feed controller, the
// periodic randomizer and the hyperfocus session together; runREPL reads one
// command per line and dispatches it to the App through execIface.
//
// Commands
//
//	help                        show available commands
//	list                        tasks matching the current filter
//	add [title]                 add a task (prompts when no title is given)
//	done|undo <id>              mark a task completed or open again
//	fav <id>                    toggle the favorite flag
//	edit <id>                   change title, subtitle or category
//	delete <id>                 remove a task
//	filter [name]               show filters, or switch to all|todo|done|favorites|category:<name>
//	feed | mph                  print the regular or the MPH feed
//	randomize                   reshuffle the regular feed
//	categories                  list categories
//	addcat <name>               add a category
//	renamecat <old> <new>       rename a category
//	delcat <name>               delete a category (its tasks are kept)
//	bookmarks                   list bookmarks
//	addbookmark <name> <url>    save a link
//	renamebookmark <id> <name>  rename a bookmark
//	delbookmark <id>            delete a bookmark
//	focus [minutes|duration]    start a hyperfocus countdown
//	unfocus                     stop it
//	search [text]               browse curated content, matching name or description
//	searchcat [all|todo|done]   show or switch the search category (reshuffles)
//	settings                    show feed settings
//	set <key> <value>           persist a feed setting
//	reset <key>                 drop a persisted feed setting
//	reload                      treat the store as changed elsewhere and refresh
//	exit | quit                 leave
//
// Task and bookmark ids may be abbreviated to any unique prefix.
package cli
