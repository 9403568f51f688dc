// Package input normalizes raw device identifiers into the canonical
// event vocabulary consumed by the tracker engine.
//
// Raw tokens arrive from capture adapters in whatever shape the device
// library reports them ("f1", "button.left", "GamePad Button 0"). The
// normalizers translate them into canonical codes:
//
//   - Keyboard: "A".."Z", "D0".."D9", "F1".."F24", "NumPad0".."NumPad9",
//     plus named keys such as "Escape", "Return", "LShiftKey", "OemComma"
//   - Mouse: "MOUSE1".."MOUSE3", "MOUSEX1", "MOUSEX2"
//   - Gamepad: "Buttons0".."ButtonsN", with analog trigger axes mapped to
//     dedicated virtual button indices that never collide with face buttons
//
// Every canonical code resolves back to exactly one Source via InferSource;
// the partition is the exact inverse of the normalizers' tagging. Tokens
// outside the known vocabulary are rejected with ErrInvalidInput — there is
// no best-effort coercion.
package input
