package parser

import (
	"strings"

	"github.com/nosqlite-go/nosqlite/internal/lexer"
)

// Parser wraps a token stream and a read cursor, following the
// teacher's scanner-wrapping `Parser` structuring (one parse<Thing>
// method per grammar production, see internal/parser/mysql/parser.go).
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse tokenizes input and parses exactly one `command` production
// (spec.md §4.7 EBNF: `shortcut | dml_stmt ';'`).
func Parse(input string) (Statement, error) {
	toks, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseCommand()
}

func (p *Parser) cur() (lexer.Token, error) {
	if p.pos >= len(p.toks) || p.toks[p.pos].Kind == lexer.EOF {
		return lexer.Token{}, errNotEnoughTokens()
	}
	return p.toks[p.pos], nil
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok, err := p.cur()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, errWrongToken(tok.Kind)
	}
	return p.advance(), nil
}

func (p *Parser) parseCommand() (Statement, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.ShortcutQuit, lexer.ShortcutQuitLong, lexer.ShortcutGetContext:
		p.advance()
		return ShortcutStmt{Kind: tok.Kind}, nil
	}

	stmt, err := p.parseDMLStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseDMLStmt() (Statement, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.Create:
		return p.parseCreate()
	case lexer.Drop:
		return p.parseDrop()
	case lexer.Alter:
		return p.parseAlterRename()
	case lexer.Use:
		return p.parseUse()
	case lexer.Show:
		return p.parseShow()
	case lexer.Insert:
		return p.parseInsert()
	case lexer.Select:
		return p.parseSelect()
	default:
		return nil, errUnexpectedToken(tok)
	}
}

func (p *Parser) parseObj() (ObjKind, error) {
	tok, err := p.cur()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case lexer.Database:
		p.advance()
		return ObjDatabase, nil
	case lexer.Schema:
		p.advance()
		return ObjSchema, nil
	case lexer.Table:
		p.advance()
		return ObjTable, nil
	default:
		return 0, errUnexpectedToken(tok)
	}
}

func (p *Parser) parseObjMany() (ObjManyKind, error) {
	tok, err := p.cur()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case lexer.Schemas:
		p.advance()
		return ObjManySchemas, nil
	case lexer.Tables:
		p.advance()
		return ObjManyTables, nil
	default:
		return 0, errUnexpectedToken(tok)
	}
}

func (p *Parser) parseIdent() (Ident, error) {
	tok, err := p.expect(lexer.Identifier)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Text: tok.Text, Parts: strings.Split(tok.Text, ".")}, nil
}

func (p *Parser) parseCreate() (Statement, error) {
	p.advance() // CREATE
	obj, err := p.parseObj()
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	stmt := CreateStmt{Obj: obj, Ident: ident}
	if obj == ObjTable {
		tok, err := p.cur()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.LParen {
			cols, err := p.parseColumnList()
			if err != nil {
				return nil, err
			}
			stmt.Columns = cols
		}
	}
	return stmt, nil
}

func (p *Parser) parseColumnList() ([]ColumnSpec, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var cols []ColumnSpec
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)

		tok, err := p.cur()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return cols, nil
}

func (p *Parser) parseColumn() (ColumnSpec, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ColumnSpec{}, err
	}
	typeTok, err := p.cur()
	if err != nil {
		return ColumnSpec{}, err
	}
	if !isTypeKeyword(typeTok.Kind) {
		return ColumnSpec{}, errUnexpectedToken(typeTok)
	}
	p.advance()

	col := ColumnSpec{Name: name, Type: TypeSpec{Kind: typeTok.Kind, Length: typeTok.Length}}

	tok, err := p.cur()
	if err != nil {
		return ColumnSpec{}, err
	}
	if tok.Kind == lexer.Primary {
		p.advance()
		if _, err := p.expect(lexer.Key); err != nil {
			return ColumnSpec{}, err
		}
		col.PrimaryKey = true
	}
	return col, nil
}

func isTypeKeyword(k lexer.Kind) bool {
	switch k {
	case lexer.TypeByte, lexer.TypeBool, lexer.TypeShort, lexer.TypeInteger, lexer.TypeLong,
		lexer.TypeUShort, lexer.TypeUInteger, lexer.TypeULong, lexer.TypeFloat, lexer.TypeDouble,
		lexer.TypeVarChar, lexer.TypeBytes:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDrop() (Statement, error) {
	p.advance() // DROP
	obj, err := p.parseObj()
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return DropStmt{Obj: obj, Ident: ident}, nil
}

func (p *Parser) parseAlterRename() (Statement, error) {
	p.advance() // ALTER
	obj, err := p.parseObj()
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Rename); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.To); err != nil {
		return nil, err
	}
	newIdent, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return AlterRenameStmt{Obj: obj, Ident: ident, NewIdent: newIdent}, nil
}

func (p *Parser) parseUse() (Statement, error) {
	p.advance() // USE
	obj, err := p.parseObj()
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return UseStmt{Obj: obj, Ident: ident}, nil
}

func (p *Parser) parseShow() (Statement, error) {
	p.advance() // SHOW
	objMany, err := p.parseObjMany()
	if err != nil {
		return nil, err
	}
	stmt := ShowStmt{ObjMany: objMany}

	tok, err := p.cur()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.From {
		p.advance()
		ident, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		stmt.From = &ident
	}
	return stmt, nil
}

func (p *Parser) parseLiteral() (Literal, error) {
	tok, err := p.cur()
	if err != nil {
		return Literal{}, err
	}
	switch tok.Kind {
	case lexer.IntLiteral, lexer.FloatLiteral, lexer.StringLiteral, lexer.BoolLiteral:
		p.advance()
		return Literal{Kind: tok.Kind, Text: tok.Text}, nil
	default:
		return Literal{}, errUnexpectedToken(tok)
	}
}

func (p *Parser) parseInsert() (Statement, error) {
	p.advance() // INSERT
	if tok, err := p.cur(); err == nil && tok.Kind == lexer.Into {
		p.advance()
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Values); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}

	var values []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)

		tok, err := p.cur()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return InsertStmt{Table: table, Values: values}, nil
}

func (p *Parser) parseSelect() (Statement, error) {
	p.advance() // SELECT
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Where); err != nil {
		return nil, err
	}
	col, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Equals); err != nil {
		return nil, err
	}
	val, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return SelectStmt{Table: table, WhereColumn: col, WhereValue: val}, nil
}
