// Package catalog inspects the contents of a WT2003S storage medium.
//
// # Naming Convention
//
// The device addresses files in the root directory by a four digit name:
//
//	0001.mp3
//	0002.mp3
//	...
//	9999.mp3
//
// player.PlayTrackByName(ctx, 7) plays "0007.mp3". Files not following the
// convention can only be reached by storage index (player.PlayTrack), whose
// order depends on the order files were copied to the medium.
//
// # Scanning
//
// Scan walks a mounted card (or any directory prepared for one) and decodes
// each track's MP3 headers to report its sample rate and duration:
//
//	cat, err := catalog.Scan("/media/sdcard")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d tracks, %v total\n", len(cat.Tracks), cat.TotalDuration())
//
// Files that fail to decode are still listed, with Track.Err set.
// ScanFS does the same for any fs.FS.
package catalog
