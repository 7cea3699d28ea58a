// Package linker creates, inspects and removes directory links.
//
// A directory link makes one path behave as if it contained another
// directory's content. Three mechanisms exist and are tried in a fixed order
// until one succeeds:
//
//  1. symlink: a native symbolic link. Needs privileges on Windows.
//  2. junction: a Windows directory junction. No special rights needed.
//  3. copy: a full copy of the target plus a hidden marker file,
//     .sacred_copy_link, recording "target=<absolute path>".
//
// Mechanisms the host cannot use are skipped. A copy is not a live link: its
// content diverges from the target as soon as either side is written. Use
// SyncCopy to refresh it explicitly.
package linker
