package catalog

// Known Wildfire data files.
const (
	// FixArchive ships with this tool and carries the repaired assets.
	FixArchive = "fixes.bnk"

	// Executable is the game binary.
	Executable = "wildfire.exe"
)

// WildfireFixes is the corrective-edit catalog for a stock Wildfire
// installation. Order matters: later fixes assume earlier ones ran.
//
// Byte patches deliberately use equal-length patterns only; the executable
// is a fixed-layout binary.
func WildfireFixes() []Op {
	return []Op{
		// The main menu background in the retail build is truncated and
		// renders garbage below the title. The repaired image keeps the
		// slot's name so the engine finds it unchanged.
		ReplaceEntry{
			SourceArchive: FixArchive,
			SourceEntry:   "menu_main.pcx",
			TargetArchive: "gui.bnk",
			TargetEntry:   "menu_main.pcx",
		},

		// The attack horn sample has a corrupt header and plays as a
		// click on some sound cards.
		ReplaceEntry{
			SourceArchive: FixArchive,
			SourceEntry:   "horn_02.wav",
			TargetArchive: "sound.bnk",
			TargetEntry:   "horn_02.wav",
		},

		// The old smoke animation crashes the renderer on the last
		// frame; it is superseded by the repaired one below.
		RemoveEntry{
			Archive: "anim.bnk",
			Entry:   "smoke_old.ani",
		},
		AddEntry{
			SourceArchive: FixArchive,
			SourceEntry:   "smoke.ani",
			TargetArchive: "anim.bnk",
		},

		// Misspelled menu label embedded in the executable.
		BytePatch{
			File:    Executable,
			Search:  []byte("Mutliplayer"),
			Replace: []byte("Multiplayer"),
		},

		// The game window is created as a bare WS_POPUP and never shows
		// up in the taskbar. Swap the pushed style dword for an
		// overlapped window.
		BytePatch{
			File:    Executable,
			Search:  []byte{0x68, 0x00, 0x00, 0x00, 0x80, 0x6A, 0x00},
			Replace: []byte{0x68, 0x00, 0x00, 0xCF, 0x00, 0x6A, 0x00},
		},
	}
}
