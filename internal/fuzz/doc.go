
// Package fuzztests houses Go fuzz harnesses that exercise the s-Java
// checking pipeline (source -> lexer -> parser -> sema). Its goal is to smoke
// test robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через классификатор строк, парсер и семантическую проверку.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/sema, internal/diag, internal/testkit.

package fuzztests
