// Package cli is the interactive terminal front end of the admin console.
//
// The REPL is the navigation shell: it mounts one screen at a time (home,
// users, pending ads, ad detail, images) and sends the operator back to the
// login prompt whenever the session gate redirects. Every screen except
// login goes through session.Gate.Require when it is mounted.
//
// Commands
//
//	login                     sign in (phone number + password)
//	logout                    sign out
//	home                      dashboard counters
//	users                     load the user roster
//	search name|phone <term>  filter users; "search" alone clears
//	ads                       load pending ads
//	ad <n|id>                 open an ad's detail view; "close" dismisses it
//	approve|reject [n|id]     moderate an ad (defaults to the open one)
//	delete <n|id>             delete a user
//	special <n|id>            toggle a user's special flag
//	page <n>, next, prev      move through the current list
//	images                    load the image gallery
//	upload <path>...          resize and upload image files
//	rmimage <n|id>            delete a gallery image
//	help, exit
//
// Row numbers refer to the rows of the page currently shown.
package cli
