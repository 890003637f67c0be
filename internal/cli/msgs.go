package cli

// Short messages (one-liners)
const (
	MsgRootShort = "Keep your tools linked to one shared skills directory"
	MsgRootLong  = `skilldock makes every configured consumer location a symlink to one
canonical shared skills directory, backing up pre-existing real content
instead of deleting it. Running skilldock with no arguments performs the
reconciliation; it is idempotent and safe to re-run at any time.`

	MsgLinkShort      = "Reconcile all consumer locations (default)"
	MsgStatusShort    = "Show the current state of every consumer location"
	MsgGenConfigShort = "Print a commented default configuration file"
	MsgVersionShort   = "Print version information"

	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"
)
