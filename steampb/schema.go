// Copyright 2021-2025 The Connect Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package steampb describes the economy trading message bodies.
//
// The schemas are assembled at init from descriptor protos, so no generated
// code is needed. Each message is a thin typed wrapper around a
// dynamicpb.Message with getters and setters for its fields, and satisfies
// proto.Message.
package steampb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const fileName = "steammessages_clientserver_2.proto"

// File is the descriptor of the trading schemas.
var File protoreflect.FileDescriptor

var (
	initiateTradeRequestDesc  protoreflect.MessageDescriptor
	initiateTradeResponseDesc protoreflect.MessageDescriptor
	startSessionDesc          protoreflect.MessageDescriptor
	cancelTradeRequestDesc    protoreflect.MessageDescriptor
)

func init() {
	file, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("steampb: build %s: %v", fileName, err))
	}
	File = file
	initiateTradeRequestDesc = mustMessage("CMsgTrading_InitiateTradeRequest")
	initiateTradeResponseDesc = mustMessage("CMsgTrading_InitiateTradeResponse")
	startSessionDesc = mustMessage("CMsgTrading_StartSession")
	cancelTradeRequestDesc = mustMessage("CMsgTrading_CancelTradeRequest")
}

func mustMessage(name protoreflect.Name) protoreflect.MessageDescriptor {
	desc := File.Messages().ByName(name)
	if desc == nil {
		panic(fmt.Sprintf("steampb: %s missing from %s", name, fileName))
	}
	return desc
}

type field struct {
	name   string
	number int32
	kind   descriptorpb.FieldDescriptorProto_Type
}

func message(name string, fields ...field) *descriptorpb.DescriptorProto {
	msg := &descriptorpb.DescriptorProto{Name: proto.String(name)}
	for _, f := range fields {
		msg.Field = append(msg.Field, &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(f.name),
			Number: proto.Int32(f.number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   f.kind.Enum(),
		})
	}
	return msg
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	const (
		uint32Kind = descriptorpb.FieldDescriptorProto_TYPE_UINT32
		uint64Kind = descriptorpb.FieldDescriptorProto_TYPE_UINT64
		stringKind = descriptorpb.FieldDescriptorProto_TYPE_STRING
	)
	return &descriptorpb.FileDescriptorProto{
		Name:   proto.String(fileName),
		Syntax: proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("CMsgTrading_InitiateTradeRequest",
				field{"trade_request_id", 1, uint32Kind},
				field{"other_steamid", 2, uint64Kind},
				field{"other_name", 3, stringKind},
			),
			message("CMsgTrading_InitiateTradeResponse",
				field{"response", 1, uint32Kind},
				field{"trade_request_id", 2, uint32Kind},
				field{"other_steamid", 3, uint64Kind},
				field{"steamguard_required_days", 4, uint32Kind},
				field{"new_device_cooldown_days", 5, uint32Kind},
				field{"default_password_reset_probation_days", 6, uint32Kind},
				field{"password_reset_probation_days", 7, uint32Kind},
				field{"default_email_change_probation_days", 8, uint32Kind},
				field{"email_change_probation_days", 9, uint32Kind},
			),
			message("CMsgTrading_StartSession",
				field{"other_steamid", 1, uint64Kind},
			),
			message("CMsgTrading_CancelTradeRequest",
				field{"other_steamid", 1, uint64Kind},
			),
		},
	}
}
