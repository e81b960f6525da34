package core

import (
	"encoding/json"
	"fmt"
)

// DecodeModule decodes an already-lowered core module from JSON. This is
// the one concrete way the checker obtains a Module without a lexer or
// parser: it performs no tokenization or precedence handling, only
// structural decoding of a tagged-union document, dispatching on each
// node's "kind" field the same way the in-memory tree dispatches on Go
// type via type switch.
func DecodeModule(data []byte) (*Module, error) {
	data = normalizeInput(data)
	var raw struct {
		Decls []json.RawMessage `json:"decls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}
	mod := &Module{Decls: make([]Decl, 0, len(raw.Decls))}
	for i, d := range raw.Decls {
		decl, err := decodeDecl(d)
		if err != nil {
			return nil, fmt.Errorf("decode decl %d: %w", i, err)
		}
		mod.Decls = append(mod.Decls, decl)
	}
	return mod, nil
}

type tagged struct {
	Kind string `json:"kind"`
}

func decodePos(raw json.RawMessage) Position {
	var p Position
	_ = json.Unmarshal(raw, &p)
	return p
}

func decodeDecl(raw json.RawMessage) (Decl, error) {
	var t tagged
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "let":
		var d struct {
			Pos       json.RawMessage `json:"pos"`
			Name      string          `json:"name"`
			Pattern   json.RawMessage `json:"pattern"`
			Value     json.RawMessage `json:"value"`
			Recursive bool            `json:"recursive"`
			Mutable   bool            `json:"mutable"`
			Exported  bool            `json:"exported"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		var pat Pattern
		if len(d.Pattern) > 0 {
			pat, err = decodePattern(d.Pattern)
			if err != nil {
				return nil, err
			}
		}
		return &LetDecl{
			Node:      Node{Pos: decodePos(d.Pos)},
			Name:      d.Name,
			Pattern:   pat,
			Value:     value,
			Recursive: d.Recursive,
			Mutable:   d.Mutable,
			Exported:  d.Exported,
		}, nil

	case "let_rec_group":
		var d struct {
			Pos      json.RawMessage `json:"pos"`
			Bindings []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"bindings"`
			Exported []string `json:"exported"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		bindings := make([]RecBinding, len(d.Bindings))
		for i, b := range d.Bindings {
			v, err := decodeExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = RecBinding{Name: b.Name, Value: v}
		}
		return &LetRecGroupDecl{
			Node:     Node{Pos: decodePos(d.Pos)},
			Bindings: bindings,
			Exported: d.Exported,
		}, nil

	case "external":
		var d struct {
			Pos          json.RawMessage `json:"pos"`
			Name         string          `json:"name"`
			Type         json.RawMessage `json:"type"`
			TargetSymbol string          `json:"target_symbol"`
			ImportSource string          `json:"import_source"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		typ, err := decodeTypeExpr(d.Type)
		if err != nil {
			return nil, err
		}
		return &ExternalDecl{
			Node:         Node{Pos: decodePos(d.Pos)},
			Name:         d.Name,
			Type:         typ,
			TargetSymbol: d.TargetSymbol,
			ImportSource: d.ImportSource,
		}, nil

	case "type":
		var d struct {
			Pos    json.RawMessage `json:"pos"`
			Name   string          `json:"name"`
			Params []string        `json:"params"`
			Ctors  []struct {
				Name   string            `json:"name"`
				Params []json.RawMessage `json:"params"`
			} `json:"constructors"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		ctors := make([]ConstructorSig, len(d.Ctors))
		for i, c := range d.Ctors {
			params := make([]TypeExpr, len(c.Params))
			for j, p := range c.Params {
				te, err := decodeTypeExpr(p)
				if err != nil {
					return nil, err
				}
				params[j] = te
			}
			ctors[i] = ConstructorSig{Name: c.Name, Params: params}
		}
		return &TypeDecl{
			Node:         Node{Pos: decodePos(d.Pos)},
			Name:         d.Name,
			Params:       d.Params,
			Constructors: ctors,
		}, nil
	}
	return nil, fmt.Errorf("unknown declaration kind %q", t.Kind)
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var t tagged
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}

	switch t.Kind {
	case "int", "float", "string", "bool", "unit":
		var d struct {
			Pos   json.RawMessage `json:"pos"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		kind, val, err := decodeLiteral(t.Kind, d.Value)
		if err != nil {
			return nil, err
		}
		return &Lit{Node: Node{Pos: decodePos(d.Pos)}, Kind: kind, Value: val}, nil

	case "var":
		var d struct {
			Pos  json.RawMessage `json:"pos"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &Var{Node: Node{Pos: decodePos(d.Pos)}, Name: d.Name}, nil

	case "lambda":
		var d struct {
			Pos   json.RawMessage `json:"pos"`
			Param string          `json:"param"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		body, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Node: Node{Pos: decodePos(d.Pos)}, Param: d.Param, Body: body}, nil

	case "app":
		var d struct {
			Pos  json.RawMessage   `json:"pos"`
			Func json.RawMessage   `json:"func"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(d.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(d.Args)
		if err != nil {
			return nil, err
		}
		return &App{Node: Node{Pos: decodePos(d.Pos)}, Func: fn, Args: args}, nil

	case "binop":
		var d struct {
			Pos   json.RawMessage `json:"pos"`
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		l, err := decodeExpr(d.Left)
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(d.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{Node: Node{Pos: decodePos(d.Pos)}, Op: d.Op, Left: l, Right: r}, nil

	case "unop":
		var d struct {
			Pos     json.RawMessage `json:"pos"`
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		return &UnOp{Node: Node{Pos: decodePos(d.Pos)}, Op: d.Op, Operand: operand}, nil

	case "let":
		var d struct {
			Pos   json.RawMessage `json:"pos"`
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &Let{Node: Node{Pos: decodePos(d.Pos)}, Name: d.Name, Value: value, Body: body}, nil

	case "let_rec":
		var d struct {
			Pos   json.RawMessage `json:"pos"`
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &LetRec{Node: Node{Pos: decodePos(d.Pos)}, Name: d.Name, Value: value, Body: body}, nil

	case "let_rec_group":
		var d struct {
			Pos      json.RawMessage `json:"pos"`
			Bindings []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"bindings"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		bindings := make([]RecBinding, len(d.Bindings))
		for i, b := range d.Bindings {
			v, err := decodeExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = RecBinding{Name: b.Name, Value: v}
		}
		body, err := decodeExpr(d.Body)
		if err != nil {
			return nil, err
		}
		return &LetRecGroup{Node: Node{Pos: decodePos(d.Pos)}, Bindings: bindings, Body: body}, nil

	case "match":
		var d struct {
			Pos       json.RawMessage `json:"pos"`
			Scrutinee json.RawMessage `json:"scrutinee"`
			Arms      []struct {
				Pattern json.RawMessage `json:"pattern"`
				Guard   json.RawMessage `json:"guard"`
				Body    json.RawMessage `json:"body"`
			} `json:"arms"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(d.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]MatchArm, len(d.Arms))
		for i, a := range d.Arms {
			p, err := decodePattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			var guard Expr
			if len(a.Guard) > 0 {
				guard, err = decodeExpr(a.Guard)
				if err != nil {
					return nil, err
				}
			}
			body, err := decodeExpr(a.Body)
			if err != nil {
				return nil, err
			}
			arms[i] = MatchArm{Pattern: p, Guard: guard, Body: body}
		}
		return &Match{Node: Node{Pos: decodePos(d.Pos)}, Scrutinee: scrutinee, Arms: arms}, nil

	case "record":
		var d struct {
			Pos    json.RawMessage `json:"pos"`
			Fields []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		names := make([]string, len(d.Fields))
		vals := make([]Expr, len(d.Fields))
		for i, f := range d.Fields {
			v, err := decodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			names[i], vals[i] = f.Name, v
		}
		return &RecordLit{Node: Node{Pos: decodePos(d.Pos)}, FieldNames: names, FieldVals: vals}, nil

	case "record_access":
		var d struct {
			Pos    json.RawMessage `json:"pos"`
			Record json.RawMessage `json:"record"`
			Field  string          `json:"field"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		rec, err := decodeExpr(d.Record)
		if err != nil {
			return nil, err
		}
		return &RecordAccess{Node: Node{Pos: decodePos(d.Pos)}, Record: rec, Field: d.Field}, nil

	case "record_update":
		var d struct {
			Pos    json.RawMessage `json:"pos"`
			Record json.RawMessage `json:"record"`
			Fields []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		rec, err := decodeExpr(d.Record)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(d.Fields))
		vals := make([]Expr, len(d.Fields))
		for i, f := range d.Fields {
			v, err := decodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			names[i], vals[i] = f.Name, v
		}
		return &RecordUpdate{Node: Node{Pos: decodePos(d.Pos)}, Record: rec, FieldNames: names, FieldVals: vals}, nil

	case "variant":
		var d struct {
			Pos         json.RawMessage   `json:"pos"`
			Constructor string            `json:"constructor"`
			Args        []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args, err := decodeExprList(d.Args)
		if err != nil {
			return nil, err
		}
		return &VariantConstruct{Node: Node{Pos: decodePos(d.Pos)}, Constructor: d.Constructor, Args: args}, nil

	case "annot":
		var d struct {
			Pos  json.RawMessage `json:"pos"`
			Expr json.RawMessage `json:"expr"`
			Type json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Expr)
		if err != nil {
			return nil, err
		}
		typ, err := decodeTypeExpr(d.Type)
		if err != nil {
			return nil, err
		}
		return &TypeAnnot{Node: Node{Pos: decodePos(d.Pos)}, Expr: inner, Type: typ}, nil

	case "unsafe":
		var d struct {
			Pos  json.RawMessage `json:"pos"`
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Expr)
		if err != nil {
			return nil, err
		}
		return &Unsafe{Node: Node{Pos: decodePos(d.Pos)}, Expr: inner}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", t.Kind)
}

func decodeExprList(raw []json.RawMessage) ([]Expr, error) {
	out := make([]Expr, len(raw))
	for i, r := range raw {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeLiteral(kind string, raw json.RawMessage) (LitKind, interface{}, error) {
	switch kind {
	case "int":
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return IntLit, v, nil
	case "float":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return FloatLit, v, nil
	case "string":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return StringLit, v, nil
	case "bool":
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return BoolLit, v, nil
	case "unit":
		return UnitLit, nil, nil
	}
	return 0, nil, fmt.Errorf("unknown literal kind %q", kind)
}

func decodePattern(raw json.RawMessage) (Pattern, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var t tagged
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "wildcard":
		return &WildcardPattern{}, nil
	case "var":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &VarPattern{Name: d.Name}, nil
	case "int", "float", "string", "bool", "unit":
		var d struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		kind, val, err := decodeLiteral(t.Kind, d.Value)
		if err != nil {
			return nil, err
		}
		return &LitPattern{Kind: kind, Value: val}, nil
	case "variant":
		var d struct {
			Constructor string            `json:"constructor"`
			Args        []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args := make([]Pattern, len(d.Args))
		for i, a := range d.Args {
			p, err := decodePattern(a)
			if err != nil {
				return nil, err
			}
			args[i] = p
		}
		return &VariantPattern{Constructor: d.Constructor, Args: args}, nil
	case "record":
		var d struct {
			Fields []struct {
				Name    string          `json:"name"`
				Pattern json.RawMessage `json:"pattern"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fields := make([]RecordFieldPattern, len(d.Fields))
		for i, f := range d.Fields {
			p, err := decodePattern(f.Pattern)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordFieldPattern{Name: f.Name, Pattern: p}
		}
		return &RecordPattern{Fields: fields}, nil
	}
	return nil, fmt.Errorf("unknown pattern kind %q", t.Kind)
}

func decodeTypeExpr(raw json.RawMessage) (TypeExpr, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var t tagged
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case "const":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &TypeConstExpr{Name: d.Name}, nil
	case "var":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &TypeVarExpr{Name: d.Name}, nil
	case "func":
		var d struct {
			Params []json.RawMessage `json:"params"`
			Return json.RawMessage   `json:"return"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		params := make([]TypeExpr, len(d.Params))
		for i, p := range d.Params {
			te, err := decodeTypeExpr(p)
			if err != nil {
				return nil, err
			}
			params[i] = te
		}
		ret, err := decodeTypeExpr(d.Return)
		if err != nil {
			return nil, err
		}
		return &TypeFuncExpr{Params: params, Return: ret}, nil
	case "app":
		var d struct {
			Constructor string            `json:"constructor"`
			Args        []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		args := make([]TypeExpr, len(d.Args))
		for i, a := range d.Args {
			te, err := decodeTypeExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = te
		}
		return &TypeAppExpr{Constructor: d.Constructor, Args: args}, nil
	case "record":
		var d struct {
			Fields []struct {
				Name string          `json:"name"`
				Type json.RawMessage `json:"type"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		fields := make([]TypeRecordFieldExpr, len(d.Fields))
		for i, f := range d.Fields {
			te, err := decodeTypeExpr(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = TypeRecordFieldExpr{Name: f.Name, Type: te}
		}
		return &TypeRecordExpr{Fields: fields}, nil
	case "variant":
		var d struct {
			Constructors []struct {
				Name   string            `json:"name"`
				Params []json.RawMessage `json:"params"`
			} `json:"constructors"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		ctors := make([]TypeVariantFieldExpr, len(d.Constructors))
		for i, c := range d.Constructors {
			params := make([]TypeExpr, len(c.Params))
			for j, p := range c.Params {
				te, err := decodeTypeExpr(p)
				if err != nil {
					return nil, err
				}
				params[j] = te
			}
			ctors[i] = TypeVariantFieldExpr{Name: c.Name, Params: params}
		}
		return &TypeVariantExpr{Constructors: ctors}, nil
	case "union":
		var d struct {
			Members []json.RawMessage `json:"members"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		members := make([]TypeExpr, len(d.Members))
		for i, m := range d.Members {
			te, err := decodeTypeExpr(m)
			if err != nil {
				return nil, err
			}
			members[i] = te
		}
		return &TypeUnionExpr{Members: members}, nil
	case "tuple":
		var d struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		elems := make([]TypeExpr, len(d.Elements))
		for i, e := range d.Elements {
			te, err := decodeTypeExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = te
		}
		return &TypeTupleExpr{Elements: elems}, nil
	}
	return nil, fmt.Errorf("unknown type expression kind %q", t.Kind)
}
